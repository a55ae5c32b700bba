package radio

import (
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/ytget/eyetooth/internal/model"
)

// collector merges advertisements heard during one scan window into a
// device list, one entry per address in first-heard order.
type collector struct {
	mu      sync.Mutex
	devices []model.Device
	index   map[string]int
	native  map[string]bluetooth.Address
}

func newCollector() *collector {
	return &collector{
		index:  make(map[string]int),
		native: make(map[string]bluetooth.Address),
	}
}

// add records one advertisement from the device whose address renders as
// key. The first advertisement for a key decides its position.
func (c *collector) add(key string, addr bluetooth.Address, name string, rssi int16) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[key]; ok {
		// names often arrive in a later scan response
		if c.devices[i].Name == "" && name != "" {
			c.devices[i].Name = name
		}
		return
	}
	c.index[key] = len(c.devices)
	c.native[key] = addr
	c.devices = append(c.devices, model.Device{Address: key, Name: name, RSSI: rssi})
}

// result returns a copy of the devices and the native addresses by key.
func (c *collector) result() ([]model.Device, map[string]bluetooth.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	devices := make([]model.Device, len(c.devices))
	copy(devices, c.devices)
	native := make(map[string]bluetooth.Address, len(c.native))
	for k, v := range c.native {
		native[k] = v
	}
	return devices, native
}

package radio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"tinygo.org/x/bluetooth"

	"github.com/ytget/eyetooth/internal/model"
)

// Adapter implements Radio on top of the host's default BLE adapter.
type Adapter struct {
	adapter *bluetooth.Adapter
	scanFor time.Duration
	enable  func() error

	mu      sync.Mutex
	enabled bool
	seen    map[string]bluetooth.Address // native addresses from the last scan
}

// NewAdapter creates an Adapter whose discovery passes listen for scanFor.
func NewAdapter(scanFor time.Duration) *Adapter {
	a := &Adapter{
		adapter: bluetooth.DefaultAdapter,
		scanFor: scanFor,
		seen:    make(map[string]bluetooth.Address),
	}
	a.enable = a.adapter.Enable
	return a
}

// Enable powers up the adapter. A failed attempt is retried on the next
// call, so a scan succeeds once the host adapter becomes available.
func (a *Adapter) Enable() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled {
		return nil
	}
	if err := a.enable(); err != nil {
		return fmt.Errorf("failed to enable bluetooth adapter: %w", err)
	}
	a.enabled = true
	return nil
}

// Scan listens for advertisements for the configured window.
func (a *Adapter) Scan(ctx context.Context) ([]model.Device, error) {
	if err := a.Enable(); err != nil {
		return nil, err
	}

	window, cancel := context.WithTimeout(ctx, a.scanFor)
	defer cancel()

	found := newCollector()
	done := make(chan error, 1)
	go func() {
		done <- a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			found.add(result.Address.String(), result.Address, result.LocalName(), result.RSSI)
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
	case <-window.Done():
		if err := a.adapter.StopScan(); err != nil {
			log.Debug().Err(err).Msg("Failed to stop scan")
		}
		if err := <-done; err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	devices, native := found.result()

	a.mu.Lock()
	a.seen = native
	a.mu.Unlock()

	log.Debug().Int("count", len(devices)).Dur("window", a.scanFor).Msg("Scan finished")
	return devices, nil
}

// Connect opens a connection to a device reported by the last scan.
func (a *Adapter) Connect(ctx context.Context, dev model.Device, timeout time.Duration) (Conn, error) {
	a.mu.Lock()
	addr, ok := a.seen[dev.Address]
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDevice, dev.Address)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		device bluetooth.Device
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		d, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{
			ConnectionTimeout: bluetooth.NewDuration(timeout),
		})
		ch <- result{device: d, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", dev.Address, r.err)
		}
		log.Debug().Str("address", dev.Address).Msg("Connected")
		return &bleConn{device: r.device, connected: true}, nil
	case <-ctx.Done():
		// tear down a connection that completes after we gave up on it
		go func() {
			if r := <-ch; r.err == nil {
				_ = r.device.Disconnect()
			}
		}()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

type bleConn struct {
	mu        sync.Mutex
	device    bluetooth.Device
	connected bool
}

func (c *bleConn) Services(ctx context.Context) ([]string, error) {
	type result struct {
		services []bluetooth.DeviceService
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := c.device.DiscoverServices(nil)
		ch <- result{services: s, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("failed to discover services: %w", r.err)
		}
		uuids := make([]string, 0, len(r.services))
		for _, s := range r.services {
			uuids = append(uuids, s.UUID().String())
		}
		return uuids, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

func (c *bleConn) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *bleConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false
	return c.device.Disconnect()
}

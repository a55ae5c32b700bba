package console

import (
	"context"
	"fmt"
	"io"

	"github.com/ytget/eyetooth/internal/model"
)

// AvailabilityFunc checks whether a device can be connected to right now.
type AvailabilityFunc func(ctx context.Context, dev model.Device) bool

// Presenter renders the device list.
type Presenter struct {
	out io.Writer
}

// NewPresenter creates a presenter writing to out
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Render prints one 1-based line per device in input order. The audio flag
// comes from set membership only. When available is non-nil it is called
// once per device, so a render blocks for up to one connection timeout per
// device listed; a nil checker leaves the Available column empty.
func (p *Presenter) Render(ctx context.Context, devices []model.Device, audio model.AudioSet, available AvailabilityFunc) {
	fmt.Fprintln(p.out, "Devices found: ")
	for i, dev := range devices {
		isAvailable := ""
		if available != nil {
			isAvailable = fmt.Sprint(available(ctx, dev))
		}
		fmt.Fprintf(p.out, "%d: %s, IsDeviceAudio: %t, Available: %s\n", i+1, dev, audio.Has(dev.Address), isAvailable)
	}
}

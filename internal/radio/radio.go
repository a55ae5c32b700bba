// Package radio abstracts the Bluetooth adapter: one discovery pass, and
// short-lived connections that can list a peer's advertised services.
package radio

import (
	"context"
	"errors"
	"time"

	"github.com/ytget/eyetooth/internal/model"
)

var (
	// ErrTimeout is returned when a connection attempt outlives its timeout.
	ErrTimeout = errors.New("connection timed out")

	// ErrUnknownDevice is returned when connecting to a device that the last
	// scan did not report.
	ErrUnknownDevice = errors.New("device was not seen by the last scan")
)

// Radio is the scanning and connection primitive used by the rest of the app.
type Radio interface {
	// Scan performs one discovery pass and returns the devices seen, in the
	// order they were first heard.
	Scan(ctx context.Context) ([]model.Device, error)

	// Connect opens a connection to dev. The caller must Close the returned
	// Conn on every path.
	Connect(ctx context.Context, dev model.Device, timeout time.Duration) (Conn, error)
}

// Conn is an open connection to one device.
type Conn interface {
	// Services returns the canonical lowercase UUID strings of the services
	// the device advertises.
	Services(ctx context.Context) ([]string, error)

	// IsConnected reports whether the link is currently up.
	IsConnected() bool

	Close() error
}

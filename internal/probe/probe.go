// Package probe opens short-lived connections to classify devices as audio
// capable and to check whether they are reachable right now. Every probe
// blocks for up to the configured timeout and reports failures on the
// console instead of returning them.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/model"
	"github.com/ytget/eyetooth/internal/radio"
)

// DefaultTimeout is the connection timeout used when none is configured.
const DefaultTimeout = 20 * time.Second

// Prober holds what both probes share.
type Prober struct {
	radio   radio.Radio
	out     io.Writer
	timeout time.Duration
}

// New creates a Prober. A non-positive timeout selects DefaultTimeout.
func New(r radio.Radio, out io.Writer, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{radio: r, out: out, timeout: timeout}
}

// IsAudio connects to dev and reports whether any advertised service is an
// audio service. Connection failures count as "not audio".
func (p *Prober) IsAudio(ctx context.Context, dev model.Device) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.radio.Connect(ctx, dev, p.timeout)
	if err != nil {
		p.report(dev, err)
		return false
	}
	defer p.close(dev, conn)

	services, err := conn.Services(ctx)
	if err != nil {
		p.report(dev, err)
		return false
	}

	for _, uuid := range services {
		fmt.Fprintf(p.out, "Service found: %s\n", uuid)
		if IsAudioService(uuid) {
			log.Debug().Str("address", dev.Address).Str("uuid", uuid).Msg("Audio service matched")
			return true
		}
	}
	return false
}

// IsAvailable reports whether dev accepts a connection right now.
func (p *Prober) IsAvailable(ctx context.Context, dev model.Device) bool {
	conn, err := p.radio.Connect(ctx, dev, p.timeout)
	if err != nil {
		p.report(dev, err)
		return false
	}
	defer p.close(dev, conn)

	return conn.IsConnected()
}

func (p *Prober) report(dev model.Device, err error) {
	if errors.Is(err, radio.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(p.out, "Timeout while connecting to %s\n", dev.Name)
	} else {
		fmt.Fprintf(p.out, "An error occurred: %v\n", err)
	}
	log.Debug().Err(err).Str("address", dev.Address).Str("name", dev.Name).Msg("Probe failed")
}

func (p *Prober) close(dev model.Device, conn radio.Conn) {
	if err := conn.Close(); err != nil {
		log.Debug().Err(err).Str("address", dev.Address).Msg("Failed to close connection")
	}
}

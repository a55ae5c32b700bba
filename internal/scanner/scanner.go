// Package scanner runs one discovery pass and never fails: errors from the
// radio are reported on the console and turned into an empty result.
package scanner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/model"
	"github.com/ytget/eyetooth/internal/radio"
)

// Scanner wraps a radio with console reporting.
type Scanner struct {
	radio radio.Radio
	out   io.Writer
}

// New creates a scanner printing notices to out
func New(r radio.Radio, out io.Writer) *Scanner {
	return &Scanner{radio: r, out: out}
}

// Scan performs one discovery pass. It returns an empty slice when the radio
// fails.
func (s *Scanner) Scan(ctx context.Context) []model.Device {
	fmt.Fprintln(s.out, "Scanning for nearby Bluetooth devices...")

	started := time.Now()
	devices, err := s.radio.Scan(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "An error occurred while scanning devices: %v\n", err)
		log.Debug().Err(err).Msg("Scan failed")
		return []model.Device{}
	}

	log.Debug().Int("count", len(devices)).Dur("duration", time.Since(started)).Msg("Scan completed")
	return devices
}

// Package session implements the interactive flow: the entry menu that scans
// with bounded retries, and the device selector that lets the user inspect a
// device and play audio while it is selected.
package session

import (
	"context"

	"github.com/ytget/eyetooth/internal/model"
)

// Scanner performs one discovery pass, returning no devices on failure.
type Scanner interface {
	Scan(ctx context.Context) []model.Device
}

// Prober classifies devices and checks their availability.
type Prober interface {
	IsAudio(ctx context.Context, dev model.Device) bool
	IsAvailable(ctx context.Context, dev model.Device) bool
}

// Player plays the audio behind a locator, reporting its own failures.
type Player interface {
	Play(ctx context.Context, locator string)
}

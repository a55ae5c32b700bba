// Package audio decodes PCM WAV files and plays them on the default output
// device through beep's speaker.
package audio

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog/log"
)

// DefaultBufferDuration is the speaker buffer length.
const DefaultBufferDuration = 100 * time.Millisecond

// Output plays a decoded audio file to completion.
type Output interface {
	Play(ctx context.Context, path string) error
}

// Speaker is an Output backed by the system's default audio device.
type Speaker struct {
	buffer time.Duration
}

// NewSpeaker creates a Speaker with the default buffer length
func NewSpeaker() *Speaker {
	return &Speaker{buffer: DefaultBufferDuration}
}

// Decode opens a WAV file. The returned streamer owns the file and must be
// closed by the caller.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open audio: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode audio: %w", err)
	}
	return streamer, format, nil
}

// Play decodes path and blocks until playback finishes or ctx is cancelled.
func (s *Speaker) Play(ctx context.Context, path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(s.buffer)); err != nil {
		return fmt.Errorf("failed to initialise speaker: %w", err)
	}
	defer speaker.Close()

	log.Debug().
		Int("sample_rate", int(format.SampleRate)).
		Dur("duration", format.SampleRate.D(streamer.Len())).
		Msg("Playback started")

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

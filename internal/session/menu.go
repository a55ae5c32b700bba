package session

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/config"
	"github.com/ytget/eyetooth/internal/console"
	"github.com/ytget/eyetooth/internal/model"
)

// Scan modes offered by the entry menu
const (
	ModeAudioOnly = "1"
	ModeAll       = "2"
)

// PromptMode is the entry menu prompt
const PromptMode = "Choose an option: \n1. Scan Audio Devices Only\n2. Scan All Devices\n"

// Menu is the top-level loop.
type Menu struct {
	prompter    console.Prompter
	scanner     Scanner
	prober      Prober
	selector    *Selector
	out         io.Writer
	maxAttempts int

	onAttempt func(int)
}

// NewMenu creates the entry menu
func NewMenu(p console.Prompter, sc Scanner, pr Prober, sel *Selector, out io.Writer) *Menu {
	return &Menu{
		prompter:    p,
		scanner:     sc,
		prober:      pr,
		selector:    sel,
		out:         out,
		maxAttempts: config.MaxScanAttempts,
	}
}

// Run loops over the menu until input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		option, err := m.prompter.Prompt(PromptMode)
		if err != nil {
			return err
		}

		switch option {
		case ModeAudioOnly:
			err = m.scanWithRetry(ctx, true)
		case ModeAll:
			err = m.scanWithRetry(ctx, false)
		default:
			fmt.Fprintln(m.out, "Invalid option. Please choose 1 or 2.")
			m.setAttempts(0)
		}
		if err != nil {
			return err
		}
	}
}

// scanWithRetry scans until a scan returns devices or maxAttempts scans came
// back empty, then hands the devices to the selector. With classify set only
// audio devices are marked and an empty audio set ends the loop without a
// retry.
func (m *Menu) scanWithRetry(ctx context.Context, classify bool) error {
	attempts := 0
	m.setAttempts(attempts)

	for attempts < m.maxAttempts {
		devices := m.scanner.Scan(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}

		if len(devices) == 0 {
			attempts++
			m.setAttempts(attempts)
			if attempts < m.maxAttempts {
				fmt.Fprintln(m.out, "Failed to scan devices. Retrying...")
				continue
			}
			fmt.Fprintln(m.out, "Failed to scan devices after several attempts.")
			break
		}

		audio := model.NewAudioSet()
		if classify {
			audio = m.classify(ctx, devices)
			if audio.Len() == 0 {
				fmt.Fprintln(m.out, "No audio devices found.")
				break
			}
		}

		err := m.selector.Run(ctx, devices, audio, m.prober.IsAvailable)
		attempts = 0
		m.setAttempts(attempts)
		return err
	}
	return nil
}

func (m *Menu) classify(ctx context.Context, devices []model.Device) model.AudioSet {
	audio := model.NewAudioSet()
	for _, dev := range devices {
		if m.prober.IsAudio(ctx, dev) {
			audio.Add(dev.Address)
		}
	}
	log.Debug().Int("devices", len(devices)).Int("audio", audio.Len()).Msg("Classification finished")
	return audio
}

func (m *Menu) setAttempts(n int) {
	if m.onAttempt != nil {
		m.onAttempt(n)
	}
}

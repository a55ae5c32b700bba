package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/console"
	"github.com/ytget/eyetooth/internal/model"
)

// State is a step of the device selection loop.
type State int

const (
	StateAwaitingInput State = iota
	StateDeviceSelected
	StateActionChosen
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateDeviceSelected:
		return "DeviceSelected"
	case StateActionChosen:
		return "ActionChosen"
	case StateQuit:
		return "Quit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Actions offered for a suitable device
const (
	ActionTurnOff = "1"
	ActionTurnOn  = "2"
	ActionConnect = "3"
)

// Prompts
const (
	PromptSelectDevice = "Select the number of the device you want to check (or 'q' to quit): "
	PromptAction       = "Choose an option: \n1. Turn Off\n2. Turn On\n3. Connect\n"
	PromptLocator      = "Enter the YouTube link of the song: "
	PromptVolume       = "Enter the volume percentage (0-100): "
)

var (
	errInvalidInput     = errors.New("invalid input")
	errInvalidSelection = errors.New("invalid selection")
)

// Selector runs the device selection loop for one scan.
type Selector struct {
	prompter  console.Prompter
	presenter *console.Presenter
	player    Player
	out       io.Writer

	state   State
	onState func(State)
}

// NewSelector creates a selector
func NewSelector(p console.Prompter, presenter *console.Presenter, player Player, out io.Writer) *Selector {
	return &Selector{
		prompter:  p,
		presenter: presenter,
		player:    player,
		out:       out,
	}
}

// State returns the current loop state
func (s *Selector) State() State {
	return s.state
}

// Run shows the device list and handles selections until the user quits.
// It returns nil on quit and an error only when input or ctx ends.
func (s *Selector) Run(ctx context.Context, devices []model.Device, audio model.AudioSet, available console.AvailabilityFunc) error {
	s.setState(StateAwaitingInput)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.presenter.Render(ctx, devices, audio, available)
		choice, err := s.prompter.Prompt(PromptSelectDevice)
		if err != nil {
			return err
		}

		if strings.EqualFold(choice, "q") {
			s.setState(StateQuit)
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		index, err := parseSelection(choice, len(devices))
		switch {
		case errors.Is(err, errInvalidInput):
			fmt.Fprintln(s.out, "Invalid input.")
			continue
		case errors.Is(err, errInvalidSelection):
			fmt.Fprintln(s.out, "Invalid selection.")
			continue
		}

		if err := s.handleDevice(ctx, devices[index], audio, available); err != nil {
			return err
		}
		s.setState(StateAwaitingInput)
	}
}

func (s *Selector) handleDevice(ctx context.Context, dev model.Device, audio model.AudioSet, available console.AvailabilityFunc) error {
	s.setState(StateDeviceSelected)

	isAudio := audio.Has(dev.Address)
	isAvailable := available != nil && available(ctx, dev)

	availableColumn := ""
	if available != nil {
		availableColumn = strconv.FormatBool(isAvailable)
	}
	fmt.Fprintf(s.out, "You selected: %s, IsDeviceAudio: %t, Available: %s\n", dev, isAudio, availableColumn)

	if !isAudio || !isAvailable {
		fmt.Fprintf(s.out, "The device %s either does not seem to be an audio device or is not available.\n", dev.Name)
		return nil
	}

	fmt.Fprintf(s.out, "The device %s seems to be an audio device and is available.\n", dev.Name)
	s.setState(StateActionChosen)

	action, err := s.prompter.Prompt(PromptAction)
	if err != nil {
		return err
	}
	if action != ActionConnect {
		log.Debug().Str("action", action).Str("address", dev.Address).Msg("Action has no effect")
		return nil
	}

	url, err := s.prompter.Prompt(PromptLocator)
	if err != nil {
		return err
	}
	s.player.Play(ctx, url)

	volume, err := s.prompter.Prompt(PromptVolume)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Volume set to %s%% (note: actual adjustment might not be supported).\n", volume)
	return nil
}

func (s *Selector) setState(state State) {
	if s.state != state {
		log.Debug().Stringer("from", s.state).Stringer("to", state).Msg("Selector state")
	}
	s.state = state
	if s.onState != nil {
		s.onState(state)
	}
}

// parseSelection converts a 1-based choice into an index into n devices.
func parseSelection(choice string, n int) (int, error) {
	number, err := strconv.Atoi(choice)
	if err != nil {
		return 0, errInvalidInput
	}
	index := number - 1
	if index < 0 || index >= n {
		return 0, errInvalidSelection
	}
	return index, nil
}

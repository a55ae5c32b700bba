// Package console provides line input for the interactive menus and the
// device list renderer.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInputClosed is returned by a Prompter once no more input can be read
// (end of file or interrupt).
var ErrInputClosed = errors.New("input closed")

// Prompter shows a prompt and reads one line of input.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Terminal is a readline-backed Prompter.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal creates a terminal reading from stdin
func NewTerminal() (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Terminal{rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (t *Terminal) Stdout() io.Writer {
	return t.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the prompt.
func (t *Terminal) Stderr() io.Writer {
	return t.rl.Stderr()
}

// Prompt prints prompt and reads a line. Multi-line prompts are printed up to
// their last line, which becomes the readline prompt.
func (t *Terminal) Prompt(prompt string) (string, error) {
	head, last := splitPrompt(prompt)
	if head != "" {
		fmt.Fprint(t.rl.Stdout(), head)
	}
	t.rl.SetPrompt(last)

	line, err := t.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Close restores the terminal
func (t *Terminal) Close() error {
	return t.rl.Close()
}

func splitPrompt(prompt string) (head, last string) {
	i := strings.LastIndex(prompt, "\n")
	if i < 0 {
		return "", prompt
	}
	return prompt[:i+1], prompt[i+1:]
}

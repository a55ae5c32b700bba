package console

import (
	"fmt"
	"io"
)

// Script is a Prompter that answers from a fixed list of lines, echoing each
// prompt and answer to Out when it is set. It returns ErrInputClosed once the
// lines run out.
type Script struct {
	Out     io.Writer
	lines   []string
	Prompts []string
}

// NewScript creates a scripted prompter
func NewScript(out io.Writer, lines ...string) *Script {
	return &Script{Out: out, lines: lines}
}

func (s *Script) Prompt(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Out != nil {
		fmt.Fprint(s.Out, prompt)
	}
	if len(s.lines) == 0 {
		return "", ErrInputClosed
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if s.Out != nil {
		fmt.Fprintln(s.Out, line)
	}
	return line, nil
}

// Remaining returns the number of unread lines
func (s *Script) Remaining() int {
	return len(s.lines)
}

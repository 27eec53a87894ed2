package ui

import (
	"fmt"
	"io"
	"strings"
)

// StatusDisplay redraws a block of text in place. When the output is not a
// terminal each update is printed on its own line instead.
type StatusDisplay struct {
	out       io.Writer
	inPlace   bool
	lastLines int
}

func NewStatusDisplay(out io.Writer, inPlace bool) *StatusDisplay {
	return &StatusDisplay{
		out:     out,
		inPlace: inPlace,
	}
}

// Update replaces the previously shown block with message.
func (s *StatusDisplay) Update(message string) {
	if !s.inPlace {
		fmt.Fprintln(s.out, message)
		return
	}

	s.clear()
	fmt.Fprint(s.out, message)
	s.lastLines = strings.Count(message, "\n") + 1
}

// Hide erases the current block.
func (s *StatusDisplay) Hide() {
	if !s.inPlace {
		return
	}
	s.clear()
	s.lastLines = 0
}

// Done leaves the last block on screen and moves to a fresh line.
func (s *StatusDisplay) Done() {
	if s.inPlace && s.lastLines > 0 {
		fmt.Fprintln(s.out)
	}
	s.lastLines = 0
}

func (s *StatusDisplay) clear() {
	if s.lastLines > 1 {
		fmt.Fprintf(s.out, "\033[%dA", s.lastLines-1)
	}
	fmt.Fprint(s.out, "\r\033[J")
}

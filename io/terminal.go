package io

import (
	"io"
)

// TERMINAL_TAB is the tab stop interval.
const TERMINAL_TAB = 8

// Terminal renders teleprinter output on a host terminal.
//
// Backspace erases the previous character, tab advances to the next tab
// stop, line feed starts a new line and bell rings the host bell.
// Carriage return is ignored, as line feed already returns the carriage.
// Other control characters are dropped.
type Terminal struct {
	Output io.Writer // Host terminal.
	Raw    bool      // Host terminal is in raw mode; line feed needs a carriage return.

	column int
}

// Write renders printed characters.
func (term *Terminal) Write(p []byte) (n int, err error) {
	var out []byte

	for _, ch := range p {
		switch {
		case ch == 0x07:
			out = append(out, ch)
		case ch == 0x08:
			if term.column > 0 {
				term.column--
				out = append(out, '\b', ' ', '\b')
			}
		case ch == 0x09:
			for {
				out = append(out, ' ')
				term.column++
				if term.column%TERMINAL_TAB == 0 {
					break
				}
			}
		case ch == 0x0a:
			if term.Raw {
				out = append(out, '\r')
			}
			out = append(out, '\n')
			term.column = 0
		case ch > 31 && ch < 127:
			out = append(out, ch)
			term.column++
		}
	}

	_, err = term.Output.Write(out)
	if err != nil {
		return
	}

	n = len(p)

	return
}

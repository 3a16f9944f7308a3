package io

import (
	"io"
)

// TELEPRINTER_DELAY is the number of cycles to print one character.
const TELEPRINTER_DELAY = 300

// Teleprinter is the console printer, IOT device 4.
type Teleprinter struct {
	Output io.Writer // Printed characters; discarded when nil.
	Flag   bool      // Printer is ready.

	delay int
}

var _ Device = (*Teleprinter)(nil)
var _ Ticker = (*Teleprinter)(nil)

// Reset makes the printer ready.
func (tp *Teleprinter) Reset() {
	tp.Flag = true
	tp.delay = 0
}

// Tick counts down the print delay.
func (tp *Teleprinter) Tick() {
	if tp.delay == 0 {
		return
	}

	tp.delay--
	if tp.delay == 0 {
		tp.Flag = true
	}
}

// Print sends a character to the printer and starts the print delay.
func (tp *Teleprinter) Print(ch byte) (err error) {
	tp.Flag = false
	tp.delay = TELEPRINTER_DELAY

	if tp.Output == nil {
		return
	}

	_, err = tp.Output.Write([]byte{ch})
	if err != nil {
		err = &ErrDevice{Device: DEVICE_TELEPRINTER, Err: err}
	}

	return
}

// Pulse implements TSF (pulse 1), TCF (pulse 2) and TLS (pulse 4).
func (tp *Teleprinter) Pulse(iot Iot, pulse uint32) (resp Response, err error) {
	switch pulse {
	case PULSE_1:
		resp.Skip = tp.Flag
	case PULSE_2:
		tp.Flag = false
	case PULSE_4:
		err = tp.Print(byte(iot.Ac & 0377))
	}

	return
}

package io

import (
	"slices"
)

// TapeMode is the paper-tape reader framing.
type TapeMode int

//go:generate go tool stringer -linecomment -type=TapeMode
const (
	TAPE_NULL   = TapeMode(0) // null
	TAPE_ALPHA  = TapeMode(1) // alpha
	TAPE_BINARY = TapeMode(2) // binary
)

// Paper-tape reader timing and capacity.
const (
	TAPE_DELAY_ALPHA  = 10      // Cycles to read an alpha frame.
	TAPE_DELAY_BINARY = 30      // Cycles to read a binary word.
	TAPE_CAPACITY     = 1 << 20 // Longest tape, in frames.
)

// TapeReader is the paper-tape reader, IOT device 1.
//
// The reader is armed by RSA (alpha, one frame) or RSB (binary, three
// frames of six bits). Once the read delay has passed the buffer is
// refilled, the flag is set, and the reader goes idle until armed again.
type TapeReader struct {
	Data    []byte   // Tape contents.
	Pointer int      // Next frame to read.
	Mode    TapeMode // Armed framing, or TAPE_NULL when idle.
	Flag    bool     // Buffer is full.
	Buffer  uint32   // Reader buffer.

	delay int
}

var _ Device = (*TapeReader)(nil)
var _ Ticker = (*TapeReader)(nil)

// Load mounts a tape, positioned at its first frame.
func (tr *TapeReader) Load(data []byte) (err error) {
	if len(data) > TAPE_CAPACITY {
		err = &ErrDevice{Device: DEVICE_TAPE_READER, Err: ErrTapeFull}
		return
	}

	tr.Data = slices.Clone(data)
	tr.Pointer = 0

	return
}

// Rewind positions the tape at its first frame.
func (tr *TapeReader) Rewind() {
	tr.Pointer = 0
}

// Reset idles the reader, keeping the tape position.
func (tr *TapeReader) Reset() {
	tr.Mode = TAPE_NULL
	tr.Flag = false
	tr.Buffer = 0
	tr.delay = 0
}

// Remaining returns the number of unread frames.
func (tr *TapeReader) Remaining() int {
	return max(len(tr.Data)-tr.Pointer, 0)
}

// Arm starts reading one buffer in the given framing.
func (tr *TapeReader) Arm(mode TapeMode) {
	tr.Mode = mode
	switch mode {
	case TAPE_ALPHA:
		tr.delay = TAPE_DELAY_ALPHA
	case TAPE_BINARY:
		tr.delay = TAPE_DELAY_BINARY
	}
}

// Tick counts down the read delay and refills the buffer.
func (tr *TapeReader) Tick() {
	if tr.Mode == TAPE_NULL {
		return
	}

	if tr.delay > 0 {
		tr.delay--
	}

	if tr.delay > 0 {
		return
	}

	switch tr.Mode {
	case TAPE_ALPHA:
		if tr.Remaining() < 1 {
			return
		}
		tr.Buffer = uint32(tr.Data[tr.Pointer])
		tr.Pointer++
	case TAPE_BINARY:
		if tr.Remaining() < 3 {
			return
		}
		var word uint32
		for _, frame := range tr.Data[tr.Pointer : tr.Pointer+3] {
			word = word<<6 | uint32(frame&077)
		}
		tr.Buffer = word
		tr.Pointer += 3
	}

	tr.Flag = true
	tr.Mode = TAPE_NULL
}

// Pulse implements RSF (pulse 1), RRB (pulse 2) and RSA/RSB (pulse 4).
func (tr *TapeReader) Pulse(iot Iot, pulse uint32) (resp Response, err error) {
	switch pulse {
	case PULSE_1:
		resp.Skip = tr.Flag
	case PULSE_2:
		tr.Flag = false
		resp.Data = tr.Buffer
	case PULSE_4:
		mode := TAPE_ALPHA
		if iot.Subdevice&2 != 0 {
			mode = TAPE_BINARY
		}
		tr.Arm(mode)
	}

	return
}

package io

// Keyboard is the console keyboard, IOT device 3.
type Keyboard struct {
	Flag   bool   // A character is in the buffer.
	Buffer uint32 // Last character typed.

	pending []byte
}

var _ Device = (*Keyboard)(nil)
var _ Ticker = (*Keyboard)(nil)

// Reset empties the keyboard.
func (kb *Keyboard) Reset() {
	kb.Flag = false
	kb.Buffer = 0
	kb.pending = nil
}

// Type queues characters as if typed at the console.
func (kb *Keyboard) Type(text ...byte) {
	kb.pending = append(kb.pending, text...)
}

// Pending returns the number of queued characters.
func (kb *Keyboard) Pending() int {
	return len(kb.pending)
}

// Tick moves the next typed character into an empty buffer.
func (kb *Keyboard) Tick() {
	if kb.Flag || len(kb.pending) == 0 {
		return
	}

	kb.Buffer = uint32(kb.pending[0])
	kb.pending = kb.pending[1:]
	kb.Flag = true
}

// Pulse implements KSF (pulse 1) and KRB (pulse 2).
func (kb *Keyboard) Pulse(iot Iot, pulse uint32) (resp Response, err error) {
	switch pulse {
	case PULSE_1:
		resp.Skip = kb.Flag
	case PULSE_2:
		kb.Flag = false
		resp.Data = kb.Buffer
	}

	return
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Bus is a shared signal bus with a single driver per cycle.
type Bus struct {
	Name string // Name used in diagnostics.

	value    uint32
	asserted bool
}

// Float releases the bus.
func (bus *Bus) Float() {
	bus.value = 0
	bus.asserted = false
}

// Assert drives value onto the bus. A second driver in the same cycle is a
// protocol error, and its value is discarded.
func (bus *Bus) Assert(value uint32) (err error) {
	if bus.asserted {
		err = &ProtocolError{Bus: bus.Name, Err: ErrBusMultipleAssert}
		return
	}

	bus.value = value
	bus.asserted = true

	return
}

// Read samples the bus. A floating bus reads as zero, with a protocol error.
func (bus *Bus) Read() (value uint32, err error) {
	if !bus.asserted {
		err = &ProtocolError{Bus: bus.Name, Err: ErrBusFloating}
		return
	}

	value = bus.value

	return
}

// Asserted reports whether the bus has a driver this cycle.
func (bus *Bus) Asserted() bool {
	return bus.asserted
}

// Value returns the driven value, or zero when floating.
func (bus *Bus) Value() uint32 {
	return bus.value
}

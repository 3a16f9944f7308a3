// Package io provides the I/O coprocessor and peripheral devices of the
// RDP-9: the real-time clock, paper-tape reader, keyboard and
// teleprinter, along with the DRQ arbiter used for data breaks.
package io

import (
	"github.com/ezrec/rdp9/internal"
)

// Device numbers on the IOT bus.
const (
	DEVICE_CLOCK       = 000
	DEVICE_TAPE_READER = 001
	DEVICE_KEYBOARD    = 003
	DEVICE_TELEPRINTER = 004
	DEVICE_COUNT       = 64
)

// IOT pulses, processed in ascending order.
const (
	PULSE_1 = uint32(1)
	PULSE_2 = uint32(2)
	PULSE_4 = uint32(4)
)

// Signals are the coprocessor lines driven by the CPU.
type Signals struct {
	Request         bool   // IOT request.
	Acknowledge     bool   // CPU has read the IOT result.
	Transfer        bool   // Address and Data are valid.
	InterruptDetect bool   // CPU is entering the interrupt service.
	Address         uint32 // IOT address bus.
	Data            uint32 // IOT data bus, the AC.
}

// Status are the coprocessor lines read by the CPU.
type Status struct {
	Ack       bool   // IOT serviced.
	Skip      bool   // IOT requests a skip.
	Value     uint32 // New AC.
	Interrupt bool   // Program interrupt pending.
}

// Iot is a decoded IOT request.
type Iot struct {
	Device    int    // Device, bits 6-11.
	Subdevice int    // Subdevice, bits 4-5.
	Clear     bool   // Clear AC, bit 3.
	Pulses    uint32 // Pulses, bits 0-2.
	Ac        uint32 // AC at the time of the request.
}

// DecodeIot decodes an IOT address and AC.
func DecodeIot(address uint32, ac uint32) (iot Iot) {
	iot = Iot{
		Device:    int(internal.Field(address, 6, 6)),
		Subdevice: int(internal.Field(address, 4, 2)),
		Clear:     internal.Bit(address, 3),
		Pulses:    internal.Field(address, 0, 3),
		Ac:        ac & 0777777,
	}
	return
}

// Response is the result of a single IOT pulse.
type Response struct {
	Skip bool   // Skip the next instruction.
	Data uint32 // Bits ORed into the new AC.
}

// Device is a peripheral attached to the IOT bus.
type Device interface {
	// Pulse performs one IOT pulse.
	Pulse(iot Iot, pulse uint32) (resp Response, err error)
}

// Ticker is a device with per-cycle timing.
type Ticker interface {
	// Tick advances the device by one cycle.
	Tick()
}

// Memory is core memory as seen by a data break.
type Memory interface {
	Load(addr uint32) uint32
	Store(addr uint32, value uint32)
}

// Requester is a device that requests data breaks on a DRQ channel.
type Requester interface {
	// Requesting reports whether the device wants a data break.
	Requesting() bool
	// Break performs the data break once the channel is granted.
	Break(mem Memory)
}

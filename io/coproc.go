// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"log"
)

// IOCP_DELAY is the number of cycles between an IOT request and its service.
const IOCP_DELAY = 4

// CoprocState is the coprocessor state machine state.
type CoprocState int

//go:generate go tool stringer -linecomment -type=CoprocState
const (
	COPROC_READY    = CoprocState(0) // ready
	COPROC_SERVICE  = CoprocState(1) // service
	COPROC_ACK_WAIT = CoprocState(2) // ack-wait
)

// Coprocessor is the I/O coprocessor. It is clocked once per cycle, after
// the devices tick and before the CPU latches.
type Coprocessor struct {
	Verbose bool // Set to enable verbose logging.

	// Diagnostic receives device errors. When nil, errors are logged.
	Diagnostic func(err error)

	Device          [DEVICE_COUNT]Device    // IOT devices by number.
	Drq             [DRQ_CHANNELS]Requester // Data break requesters by channel.
	Arbiter         Arbiter                 // DRQ arbiter.
	Memory          Memory                  // Core for data breaks.
	Rtc             *Clock                  // Interrupt source.
	InterruptEnable bool                    // Program interrupt enable.

	state    CoprocState
	delay    int
	ackLatch bool
	status   Status
}

// State returns the coprocessor state.
func (cp *Coprocessor) State() CoprocState {
	return cp.state
}

// Reset returns the coprocessor to ready, with interrupts disabled.
func (cp *Coprocessor) Reset() {
	cp.state = COPROC_READY
	cp.delay = 0
	cp.ackLatch = false
	cp.status = Status{}
	cp.InterruptEnable = false
	cp.Arbiter.Reset()
}

func (cp *Coprocessor) diagnose(err error) {
	if err == nil {
		return
	}

	if cp.Diagnostic != nil {
		cp.Diagnostic(err)
		return
	}

	log.Printf("iocp: %v", err)
}

// Clock runs one coprocessor cycle and returns the status lines for the CPU.
func (cp *Coprocessor) Clock(sig Signals) (status Status) {
	if sig.InterruptDetect {
		cp.InterruptEnable = false
		if cp.Rtc != nil {
			cp.Rtc.Flag = false
		}
	}

	cp.dataBreak()

	if sig.Acknowledge {
		cp.ackLatch = true
	}

	if cp.delay > 0 {
		cp.delay--
	} else {
		switch cp.state {
		case COPROC_READY:
			if sig.Request {
				cp.state = COPROC_SERVICE
				cp.delay = IOCP_DELAY
				cp.ackLatch = false
			}
		case COPROC_SERVICE:
			cp.status = cp.service(sig)
			cp.state = COPROC_ACK_WAIT
		case COPROC_ACK_WAIT:
			if cp.ackLatch {
				cp.ackLatch = false
				cp.status = Status{}
				cp.state = COPROC_READY
			}
		}
	}

	cp.status.Interrupt = cp.InterruptEnable && cp.Rtc != nil && cp.Rtc.Flag

	status = cp.status

	return
}

// dataBreak arbitrates the DRQ channels and runs a granted data break.
func (cp *Coprocessor) dataBreak() {
	for n, drq := range cp.Drq {
		cp.Arbiter.Request[n] = drq != nil && drq.Requesting()
	}

	cp.Arbiter.Arbitrate()

	if cp.Memory == nil {
		return
	}

	for n, grant := range cp.Arbiter.Grant {
		if grant && cp.Drq[n] != nil {
			if cp.Verbose {
				log.Printf("iocp: data break channel %v", n)
			}
			cp.Drq[n].Break(cp.Memory)
		}
	}
}

// service performs the pulses of an IOT request.
func (cp *Coprocessor) service(sig Signals) (status Status) {
	iot := DecodeIot(sig.Address, sig.Data)

	status.Ack = true
	status.Value = iot.Ac

	if cp.Verbose {
		log.Printf("iocp: iot device %02o sub %o pulses %o ac %06o", iot.Device, iot.Subdevice, iot.Pulses, iot.Ac)
	}

	device := cp.Device[iot.Device]
	if device == nil && iot.Device != DEVICE_CLOCK {
		cp.diagnose(&ErrDevice{Device: iot.Device, Err: ErrDeviceUnknown})
		return
	}

	if iot.Clear {
		status.Value = 0
	}

	for _, pulse := range []uint32{PULSE_1, PULSE_2, PULSE_4} {
		if iot.Pulses&pulse == 0 {
			continue
		}

		if iot.Device == DEVICE_CLOCK && pulse == PULSE_2 {
			cp.InterruptEnable = iot.Subdevice&2 != 0
			continue
		}

		if device == nil {
			continue
		}

		resp, err := device.Pulse(iot, pulse)
		cp.diagnose(err)

		status.Skip = status.Skip || resp.Skip
		status.Value |= resp.Data & 0777777
	}

	return
}

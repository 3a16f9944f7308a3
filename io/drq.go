package io

// DRQ_CHANNELS is the number of data break request channels.
const DRQ_CHANNELS = 8

// DRQ channel assignments.
const (
	DRQ_CLOCK = 0
)

// Arbiter grants data break requests by fixed priority, lowest channel first.
type Arbiter struct {
	Request [DRQ_CHANNELS]bool // Request lines.
	Grant   [DRQ_CHANNELS]bool // Grant pulses, valid for one cycle.

	owner int
	busy  bool
}

// Reset drops all requests and grants.
func (arb *Arbiter) Reset() {
	clear(arb.Request[:])
	clear(arb.Grant[:])
	arb.busy = false
	arb.owner = 0
}

// Arbitrate runs one cycle of arbitration. A granted channel holds the
// bus until its request drops; only then are the other channels scanned.
func (arb *Arbiter) Arbitrate() {
	clear(arb.Grant[:])

	if arb.busy && !arb.Request[arb.owner] {
		arb.busy = false
	}

	if arb.busy {
		return
	}

	for n, req := range arb.Request {
		if req {
			arb.owner = n
			arb.busy = true
			arb.Grant[n] = true
			return
		}
	}
}

// Owner returns the channel holding the grant.
func (arb *Arbiter) Owner() (channel int, ok bool) {
	channel = arb.owner
	ok = arb.busy
	return
}

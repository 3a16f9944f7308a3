package io

// Real-time clock defaults.
const (
	CLOCK_PERIOD  = 16667 // Cycles per clock tick, 60Hz at 1MHz.
	CLOCK_COUNTER = 007   // Core location counted up by each clock tick.
)

// Clock is the real-time clock, IOT device 0. Each tick of the clock
// requests a data break that counts up core[07]; the clock flag sets when
// that counter overflows to zero.
type Clock struct {
	Period int  // Cycles per clock tick; CLOCK_PERIOD when zero.
	Enable bool // Clock enabled.
	Flag   bool // Counter overflow flag, the interrupt source.

	request bool
	count   int
}

var _ Device = (*Clock)(nil)
var _ Ticker = (*Clock)(nil)
var _ Requester = (*Clock)(nil)

// Reset stops the clock.
func (clk *Clock) Reset() {
	clk.Enable = false
	clk.Flag = false
	clk.request = false
	clk.count = 0
}

// Tick advances the free running counter.
func (clk *Clock) Tick() {
	period := clk.Period
	if period <= 0 {
		period = CLOCK_PERIOD
	}

	clk.count++
	if clk.count >= period {
		clk.count = 0
		if clk.Enable {
			clk.request = true
		}
	}
}

// Requesting reports a pending clock data break.
func (clk *Clock) Requesting() bool {
	return clk.request
}

// Break counts up the clock counter in core.
func (clk *Clock) Break(mem Memory) {
	value := (mem.Load(CLOCK_COUNTER) + 1) & 0777777
	mem.Store(CLOCK_COUNTER, value)
	if value == 0 {
		clk.Flag = true
	}
	clk.request = false
}

// Pulse implements CLSF (pulse 1) and CLON/CLOF (pulse 4). Pulse 2,
// interrupt enable, belongs to the coprocessor.
func (clk *Clock) Pulse(iot Iot, pulse uint32) (resp Response, err error) {
	switch pulse {
	case PULSE_1:
		resp.Skip = clk.Flag
	case PULSE_4:
		clk.Enable = iot.Subdevice&2 != 0
		clk.Flag = false
		clk.count = 0
	}

	return
}

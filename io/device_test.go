package io

import (
	"maps"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testMemory is a small core for data breaks.
type testMemory []uint32

func (mem testMemory) Load(addr uint32) uint32 {
	return mem[addr]
}

func (mem testMemory) Store(addr uint32, value uint32) {
	mem[addr] = value
}

func TestDecodeIot(t *testing.T) {
	table := [...]struct {
		name    string
		address uint32
		ac      uint32
		iot     Iot
	}{
		{"tls", 0700406, 0101, Iot{Device: 4, Pulses: 6, Ac: 0101}},
		{"krb", 0700312, 0, Iot{Device: 3, Clear: true, Pulses: 2}},
		{"rsb", 0700144, 0, Iot{Device: 1, Subdevice: 2, Pulses: 4}},
		{"ion", 0700042, 0, Iot{Device: 0, Subdevice: 2, Pulses: 2}},
		{"high", 0707707, 01777777, Iot{Device: 077, Subdevice: 0, Clear: false, Pulses: 7, Ac: 0777777}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(entry.iot, DecodeIot(entry.address, entry.ac))
		})
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal("0700406", defines["tls"])
	assert.Equal("07", defines["CLOCK_COUNTER"])

	devices := map[string]int{
		"ion": DEVICE_CLOCK, "iof": DEVICE_CLOCK,
		"clsf": DEVICE_CLOCK, "clof": DEVICE_CLOCK, "clon": DEVICE_CLOCK,
		"rsf": DEVICE_TAPE_READER, "rrb": DEVICE_TAPE_READER,
		"rsa": DEVICE_TAPE_READER, "rsb": DEVICE_TAPE_READER,
		"ksf": DEVICE_KEYBOARD, "krb": DEVICE_KEYBOARD,
		"tsf": DEVICE_TELEPRINTER, "tcf": DEVICE_TELEPRINTER, "tls": DEVICE_TELEPRINTER,
	}

	for name, device := range devices {
		value, err := strconv.ParseUint(defines[name], 8, 32)
		if assert.NoError(err, name) {
			iot := DecodeIot(uint32(value), 0)
			assert.Equal(device, iot.Device, name)
			assert.NotZero(iot.Pulses, name)
		}
	}
}

func TestArbiter(t *testing.T) {
	assert := assert.New(t)

	arb := &Arbiter{}
	arb.Request[2] = true
	arb.Request[5] = true

	arb.Arbitrate()
	assert.True(arb.Grant[2])
	assert.False(arb.Grant[5])
	channel, ok := arb.Owner()
	assert.True(ok)
	assert.Equal(2, channel)

	// The grant is a single cycle pulse; the owner keeps the bus.
	arb.Arbitrate()
	assert.Equal([DRQ_CHANNELS]bool{}, arb.Grant)
	channel, ok = arb.Owner()
	assert.True(ok)
	assert.Equal(2, channel)

	arb.Request[2] = false
	arb.Arbitrate()
	assert.True(arb.Grant[5])
	channel, _ = arb.Owner()
	assert.Equal(5, channel)

	arb.Request[5] = false
	arb.Arbitrate()
	_, ok = arb.Owner()
	assert.False(ok)

	arb.Request[1] = true
	arb.Reset()
	assert.Equal([DRQ_CHANNELS]bool{}, arb.Request)
	_, ok = arb.Owner()
	assert.False(ok)
}

func TestClock(t *testing.T) {
	assert := assert.New(t)

	clk := &Clock{Period: 3}
	clk.Reset()

	for range 6 {
		clk.Tick()
	}
	assert.False(clk.Requesting())

	clon := DecodeIot(0700044, 0)
	clk.Pulse(clon, PULSE_4)
	assert.True(clk.Enable)

	clk.Tick()
	clk.Tick()
	assert.False(clk.Requesting())
	clk.Tick()
	assert.True(clk.Requesting())

	mem := make(testMemory, 8)
	mem[CLOCK_COUNTER] = 0777776
	clk.Break(mem)
	assert.Equal(uint32(0777777), mem[CLOCK_COUNTER])
	assert.False(clk.Flag)
	assert.False(clk.Requesting())

	resp, err := clk.Pulse(DecodeIot(0700001, 0), PULSE_1)
	assert.NoError(err)
	assert.False(resp.Skip)

	clk.Break(mem)
	assert.Equal(uint32(0), mem[CLOCK_COUNTER])
	assert.True(clk.Flag)

	resp, _ = clk.Pulse(DecodeIot(0700001, 0), PULSE_1)
	assert.True(resp.Skip)

	clk.Pulse(DecodeIot(0700004, 0), PULSE_4)
	assert.False(clk.Enable)
	assert.False(clk.Flag)
}

func TestClockDefaultPeriod(t *testing.T) {
	assert := assert.New(t)

	clk := &Clock{Enable: true}
	for range CLOCK_PERIOD - 1 {
		clk.Tick()
	}
	assert.False(clk.Requesting())
	clk.Tick()
	assert.True(clk.Requesting())
}

package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{Name: "data"}

	value, err := bus.Read()
	assert.ErrorIs(err, ErrBusFloating)
	assert.Equal(uint32(0), value)
	assert.False(bus.Asserted())

	assert.NoError(bus.Assert(0123))
	assert.True(bus.Asserted())

	err = bus.Assert(0456)
	assert.ErrorIs(err, ErrBusMultipleAssert)
	var perr *ProtocolError
	assert.True(errors.As(err, &perr))
	assert.Equal("data", perr.Bus)

	value, err = bus.Read()
	assert.NoError(err)
	assert.Equal(uint32(0123), value)

	bus.Float()
	assert.False(bus.Asserted())
	assert.Equal(uint32(0), bus.Value())
}

package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageRoundTrip(t *testing.T) {
	assert := assert.New(t)

	core := make([]uint32, 16)
	core[1] = 0123
	core[9] = 0777777
	core[15] = 01000001

	var buf bytes.Buffer
	assert.NoError(WriteCore(&buf, core))
	assert.Equal(
		"00000: 000000 000123 000000 000000\n"+
			"00010: 000000 777777 000000 000000\n"+
			"00014: 000000 000000 000000 000001\n",
		buf.String())

	loaded := make([]uint32, 16)
	assert.NoError(ReadCore(&buf, loaded))
	core[15] &= 0777777
	assert.Equal(core, loaded)
}

func TestImageRead(t *testing.T) {
	assert := assert.New(t)

	core := make([]uint32, 16)
	image := strings.Join([]string{
		"; boot image",
		"",
		"00004: 1 2 3   ; three words",
		"   00017: 777777",
	}, "\n")
	assert.NoError(ReadCore(strings.NewReader(image), core))
	assert.Equal([]uint32{0, 0, 0, 0, 1, 2, 3}, core[:7])
	assert.Equal(uint32(0777777), core[15])
}

func TestImageErrors(t *testing.T) {
	table := [...]struct {
		name   string
		image  string
		lineno int
		err    error
	}{
		{"no-colon", "00000 000123", 1, nil},
		{"bad-address", "\n00009: 1", 2, nil},
		{"bad-word", "00000: 1\n00001: 1000000", 2, nil},
		{"range", "00017: 1 2", 0, ErrCoreRange},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			core := make([]uint32, 16)
			err := ReadCore(strings.NewReader(entry.image), core)
			if entry.err != nil {
				assert.ErrorIs(err, entry.err)
				return
			}

			var serr *ErrImageSyntax
			if assert.True(errors.As(err, &serr)) {
				assert.Equal(entry.lineno, serr.LineNo)
			}
		})
	}
}

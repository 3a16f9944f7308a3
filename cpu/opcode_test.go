package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeString(t *testing.T) {
	table := [...]struct {
		code   Code
		expect string
	}{
		{MakeCode(OP_LAC, false, 040), "lac 00040"},
		{MakeCode(OP_DAC, true, 017777), "dac i 17777"},
		{MakeCode(OP_CAL, false, 0), "cal 00000"},
		{MakeCode(OP_OPR, true, 017), "law 00017"},
		{MakeCodeOpr(0), "nop"},
		{MakeCodeOpr(OPR_CLA | OPR_CMA), "cla cma"},
		{MakeCodeOpr(OPR_RAL | OPR_RTX | OPR_CLL), "cll rtl"},
		{MakeCodeOpr(OPR_SKP | OPR_SZA), "sza skp"},
		{MakeCodeOpr(OPR_HLT), "hlt"},
		{MakeCodeIot(4, 0, false, 06), "iot 000406"},
		{MakeCodeIot(1, 1, true, 04), "iot 000134"},
	}

	for _, entry := range table {
		t.Run(entry.expect, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(entry.expect, entry.code.String())
		})
	}
}

func TestCodeFields(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_ISZ, true, 01234)
	assert.Equal(Code(0461234), code)
	assert.Equal(OP_ISZ, code.Opcode())
	assert.True(code.Indirect())
	assert.Equal(uint32(01234), code.Address())
	assert.False(code.IsLaw())

	// Out of range addresses are masked.
	assert.Equal(Code(0200000), MakeCode(OP_LAC, false, 020000))

	law := Code(0760017)
	assert.True(law.IsLaw())
	assert.Equal(OP_OPR, law.Opcode())

	assert.Equal(Code(0740000|OPR_CLA), MakeCodeOpr(OPR_CLA))
	assert.Equal(Code(0700312), MakeCodeIot(3, 0, true, 2))

	assert.True(OP_DAC.Indirectable())
	assert.True(OP_JMP.Indirectable())
	assert.False(OP_CAL.Indirectable())
	assert.False(OP_OPR.Indirectable())
	assert.Equal("tad", OP_TAD.String())
}

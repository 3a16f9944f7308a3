package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTotal(t *testing.T) {
	assert := assert.New(t)

	fallback := Micro{Next: stateFetch}.Control()

	for n := range 1 << 13 {
		in := Input(n)
		c, ok := Decode(in)
		if !ok {
			assert.Equal(fallback, c, "input %05o", n)
		}
	}
}

func TestDecodeNotImplemented(t *testing.T) {
	table := [...]struct {
		name string
		in   Input
	}{
		{"eae", MakeInput(instruction(0), OpcodeInput(OP_EAE))},
		{"misc", MakeInput(State{Mode: MODE_MISC}, 0)},
		{"service-gap", MakeInput(service(25), 0)},
		{"dac-step-3", MakeInput(instruction(3), OpcodeInput(OP_DAC))},
		{"iot-step-1", MakeInput(instruction(1), OpcodeInput(OP_IOT))},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			c, ok := Decode(entry.in)
			assert.False(ok)
			assert.Equal(stateFetch, c.Next())
			assert.Equal(Latch(0), c.Latch())

			err := ErrDecode(entry.in)
			assert.True(errors.Is(err, ErrNotImplemented))
		})
	}
}

func TestDecodeDirectNormalized(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []Opcode{OP_DAC, OP_DZM, OP_LAC, OP_XOR, OP_ADD, OP_TAD, OP_XCT, OP_ISZ, OP_AND, OP_SAD, OP_JMP, OP_JMS} {
		direct, ok := Decode(MakeInput(instruction(INS_BEGIN), OpcodeInput(op)))
		assert.True(ok, "%v", op)
		done, ok := Decode(MakeInput(instruction(INS_INDIR_DONE), OpcodeInput(op)))
		assert.True(ok, "%v", op)
		assert.Equal(done, direct, "%v", op)
	}
}

func TestDecodeIndirect(t *testing.T) {
	assert := assert.New(t)

	c, ok := Decode(MakeInput(instruction(INS_BEGIN), OpcodeInput(OP_LAC)|IN_INS_INDIRECT))
	assert.True(ok)
	assert.Equal(instruction(INS_INDIR_DONE), c.Next())
	assert.Equal(SELECT_CORE, c.Select())
	assert.Equal(LATCH_MA|LATCH_MB, c.Latch())
	assert.False(c.ZeroPage())
	assert.False(c.Extended())

	c, ok = Decode(MakeInput(instruction(INS_BEGIN), OpcodeInput(OP_LAC)|IN_INS_INDIRECT|IN_INS_EXTEND))
	assert.True(ok)
	assert.True(c.Extended())

	c, ok = Decode(MakeInput(instruction(INS_BEGIN), OpcodeInput(OP_LAC)|IN_INS_INDIRECT|IN_INS_MAAI))
	assert.True(ok)
	assert.Equal(instruction(INS_INDEX_INC), c.Next())
	assert.True(c.ZeroPage())

	c, ok = Decode(MakeInput(instruction(INS_INDEX_INC), OpcodeInput(OP_LAC)|IN_INS_INDIRECT|IN_INS_MAAI))
	assert.True(ok)
	assert.Equal(instruction(INS_INDIR_DONE), c.Next())
	assert.Equal(LATCH_CORE|LATCH_MA, c.Latch())
	op, _, _, ones := c.Alu()
	assert.Equal(ALU_OR, op)
	assert.True(ones)
}

func TestDecodeHaltPanel(t *testing.T) {
	table := [...]struct {
		panel PanelState
		next  State
	}{
		{PANEL_NEUTRAL, stateHalt},
		{PANEL_STOP, service(SRV_SINGLE_STEP)},
		{PANEL_CONTINUE, service(SRV_CONTINUE)},
		{PANEL_START, service(SRV_GOTO)},
		{PANEL_EXAMINE, service(SRV_EXAMINE)},
		{PANEL_EXAMINE_NEXT, service(SRV_EXAMINE_NEXT)},
		{PANEL_DEPOSIT, service(SRV_DEPOSIT)},
		{PANEL_DEPOSIT_NEXT, service(SRV_DEPOSIT_NEXT)},
		{PANEL_READ_IN, stateHalt},
		{PANEL_EXECUTE, service(SRV_EXECUTE)},
	}

	for _, entry := range table {
		t.Run(entry.panel.String(), func(t *testing.T) {
			assert := assert.New(t)

			c, ok := Decode(MakeInput(stateHalt, PanelInput(entry.panel)))
			assert.True(ok)
			assert.Equal(entry.next, c.Next())
			assert.Equal(MISC_HALT, c.Misc())
		})
	}
}

func TestDecodeFetch(t *testing.T) {
	assert := assert.New(t)

	c, _ := Decode(MakeInput(stateFetch, 0))
	assert.Equal(service(SRV_PC_NEXT), c.Next())
	assert.Equal(SELECT_CORE, c.Select())
	assert.True(c.AddrEnable())
	assert.False(c.AddrMA())

	c, _ = Decode(MakeInput(stateFetch, IN_SRV_IRQ))
	assert.Equal(service(SRV_INT_ENTRY), c.Next())

	c, _ = Decode(MakeInput(stateFetch, IN_SRV_IRQ|PanelInput(PANEL_STOP)))
	assert.Equal(service(SRV_AWAIT_NEUTRAL), c.Next())

	c, _ = Decode(MakeInput(stateFetch, PanelInput(PANEL_CONTINUE)))
	assert.Equal(service(SRV_PC_NEXT), c.Next())
}

func TestDecodeSkips(t *testing.T) {
	assert := assert.New(t)

	c, _ := Decode(MakeInput(service(SRV_SKIP_ZERO), IN_SRV_ZERO))
	assert.Equal(LATCH_PC, c.Latch())
	c, _ = Decode(MakeInput(service(SRV_SKIP_ZERO), 0))
	assert.Equal(Latch(0), c.Latch())

	c, _ = Decode(MakeInput(service(SRV_SKIP_NONZERO), 0))
	assert.Equal(LATCH_PC, c.Latch())
	c, _ = Decode(MakeInput(service(SRV_SKIP_NONZERO), IN_SRV_ZERO))
	assert.Equal(Latch(0), c.Latch())

	c, _ = Decode(MakeInput(service(SRV_SKIP_OPR), IN_SRV_SKIP))
	assert.Equal(LATCH_PC, c.Latch())
	assert.Equal(instruction(INS_INDIR_DONE), c.Next())

	c, _ = Decode(MakeInput(service(SRV_IOT_WAIT), 0))
	assert.Equal(service(SRV_IOT_WAIT), c.Next())
	assert.Equal(MISC_IOCP_REQ|MISC_IOCP_XFER, c.Misc())

	c, _ = Decode(MakeInput(service(SRV_IOT_WAIT), IN_SRV_ACK))
	assert.Equal(service(SRV_IOT_READ), c.Next())

	c, _ = Decode(MakeInput(service(SRV_IOT_READ), IN_SRV_IOCP_SKIP))
	assert.Equal(service(SRV_IOT_SKIP), c.Next())
	assert.Equal(MISC_IOCP_ACK|MISC_IOCP_READ, c.Misc())
}

func TestDecodeOperate(t *testing.T) {
	table := [...]struct {
		name string
		bits Input
		alu  AluOp
		link LinkOp
	}{
		{"nop", 0, ALU_OR, LINK_KEEP},
		{"cla", IN_OPR_CLA, ALU_CLEAR, LINK_KEEP},
		{"cma", IN_OPR_CMA, ALU_BMA, LINK_KEEP},
		{"clc", IN_OPR_CLA | IN_OPR_CMA, ALU_PRESET, LINK_KEEP},
		{"cml", IN_OPR_CML, ALU_OR, LINK_COMPLEMENT},
		{"cll", IN_OPR_CLL, ALU_OR, LINK_KEEP},
		{"cll-set", IN_OPR_CLL | IN_OPR_LINK, ALU_OR, LINK_COMPLEMENT},
		{"stl", IN_OPR_CLL | IN_OPR_CML, ALU_OR, LINK_COMPLEMENT},
		{"stl-set", IN_OPR_CLL | IN_OPR_CML | IN_OPR_LINK, ALU_OR, LINK_KEEP},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			c, ok := Decode(MakeInput(operate(0), entry.bits))
			assert.True(ok)
			op, link, shifter, _ := c.Alu()
			assert.Equal(entry.alu, op)
			assert.Equal(entry.link, link)
			assert.False(shifter)
			assert.Equal(service(SRV_SKIP_OPR), c.Next())
		})
	}
}

func TestDecodeOperateRotate(t *testing.T) {
	assert := assert.New(t)

	c, _ := Decode(MakeInput(operate(1), IN_OPR_STEP|IN_OPR_RAL|IN_OPR_AROT))
	op, link, shifter, _ := c.Alu()
	assert.Equal(SHIFT_RTL, op.Shift())
	assert.Equal(LINK_SHIFT, link)
	assert.True(shifter)
	assert.Equal(stateFetch, c.Next())

	c, _ = Decode(MakeInput(operate(1), IN_OPR_STEP|IN_OPR_OAS|IN_OPR_RAR|IN_OPR_HLT))
	op, _, shifter, _ = c.Alu()
	assert.Equal(ALU_OR, op)
	assert.False(shifter)
	assert.Equal(stateHalt, c.Next())
}

func TestControl(t *testing.T) {
	assert := assert.New(t)

	m := Micro{
		Next:     instruction(5),
		Latch:    LATCH_AC | LATCH_CORE,
		Select:   SELECT_CROSS,
		Address:  true,
		AddrMA:   true,
		Extended: true,
		ZeroPage: true,
		Constant: true,
		Misc:     MISC_HALT | MISC_INT_DETECT,
		Alu:      ALU_AND,
		Link:     LINK_SHIFT,
		Shifter:  true,
		Ones:     true,
		LatchOB:  true,
	}

	c := m.Control()
	assert.Equal(m, c.Micro())
	assert.Equal(instruction(5), c.Next())
	assert.Equal(LATCH_AC|LATCH_CORE, c.Latch())
	assert.Equal(SELECT_CROSS, c.Select())
	assert.True(c.AddrEnable())
	assert.True(c.AddrMA())
	assert.True(c.Extended())
	assert.True(c.ZeroPage())
	assert.True(c.Constant())
	assert.Equal(MISC_HALT|MISC_INT_DETECT, c.Misc())
	op, link, shifter, ones := c.Alu()
	assert.Equal(ALU_AND, op)
	assert.Equal(LINK_SHIFT, link)
	assert.True(shifter)
	assert.True(ones)
	assert.True(c.LatchOB())

	assert.Equal("ins.05", c.Next().String())
}

func TestInput(t *testing.T) {
	assert := assert.New(t)

	in := MakeInput(instruction(3), OpcodeInput(OP_ISZ)|IN_INS_INDIRECT)
	assert.Equal(MODE_INSTRUCTION, in.Mode())
	assert.Equal(instruction(3), in.State())
	assert.Equal(OP_ISZ, in.Opcode())
	assert.True(in.Has(IN_INS_INDIRECT))
	assert.False(in.Has(IN_INS_MAAI))

	in = MakeInput(stateHalt, PanelInput(PANEL_EXECUTE))
	assert.Equal(MODE_SERVICE, in.Mode())
	assert.Equal(PANEL_EXECUTE, in.Panel())
	assert.Equal(stateHalt, in.State())

	in = MakeInput(operate(1), IN_OPR_CLA)
	assert.Equal(operate(1), in.State())
	assert.True(in.Has(IN_OPR_STEP | IN_OPR_CLA))

	assert.Less(int(MakeInput(State{Mode: MODE_MISC, Step: 077}, 03777)), 1<<13)
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Mode is the microcode decode mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_SERVICE     = Mode(0) // srv
	MODE_INSTRUCTION = Mode(1) // ins
	MODE_OPERATE     = Mode(2) // opr
	MODE_MISC        = Mode(3) // misc
)

// Control word fields.
const (
	FIELD_NEXT  = 0 // Next step and decode mode.
	FIELD_LATCH = 1 // Register latch enables.
	FIELD_BUS   = 2 // Bus select and addressing.
	FIELD_MISC  = 3 // Coprocessor and indicator lines.
	FIELD_ALU   = 4 // ALU control.
)

// Latch is the set of register latch enables.
type Latch uint8

const (
	LATCH_IR   = Latch(1 << 0)
	LATCH_MA   = Latch(1 << 1)
	LATCH_PC   = Latch(1 << 2)
	LATCH_AC   = Latch(1 << 3)
	LATCH_STEP = Latch(1 << 4)
	LATCH_MQ   = Latch(1 << 5)
	LATCH_MB   = Latch(1 << 6)
	LATCH_CORE = Latch(1 << 7)
)

// Select is the data bus source.
type Select int

//go:generate go tool stringer -linecomment -type=Select
const (
	SELECT_EMPTY = Select(0) // empty
	SELECT_AC    = Select(1) // ac
	SELECT_STEP  = Select(2) // step
	SELECT_MQ    = Select(3) // mq
	SELECT_CROSS = Select(4) // cross
	SELECT_ALU   = Select(5) // alu
	SELECT_CORE  = Select(6) // core
	SELECT_CONST = Select(7) // const
)

// Bus field bits above the data bus select.
const (
	BUS_ADDR_MA   = uint8(1 << 3) // Address bus from MA instead of PC.
	BUS_ADDR      = uint8(1 << 4) // Address bus enable.
	BUS_EXTENDED  = uint8(1 << 5) // Latch MA and PC with all 15 bits.
	BUS_ZERO_PAGE = uint8(1 << 6) // Force the address bus into bank 0.
	BUS_CONSTANT  = uint8(1 << 7) // Constant select; 020 or +1.
)

// Misc is the set of coprocessor and indicator lines.
type Misc uint8

const (
	MISC_IOCP_REQ   = Misc(1 << 0) // Coprocessor request.
	MISC_IOCP_ACK   = Misc(1 << 1) // Coprocessor acknowledge.
	MISC_IOCP_XFER  = Misc(1 << 2) // IOT address and data are valid.
	MISC_HALT       = Misc(1 << 3) // Halt indicator.
	MISC_IOCP_READ  = Misc(1 << 4) // Data bus driven by the coprocessor.
	MISC_INT_DETECT = Misc(1 << 5) // Interrupt entry.
)

// ALU field bits above the op select.
const (
	ALU_LINK_SHIFT = 3               // Link select in bits 3-4.
	ALU_SHIFTER    = uint8(1 << 5)   // Route the shifter to the bus.
	ALU_ONES       = uint8(1 << 6)   // One's complement mode.
	ALU_LATCH_OB   = uint8(1 << 7)   // Latch OB, Zero, Sign and Link.
	ALU_OP_MASK    = uint8(0b111)    // Op select.
	ALU_LINK_MASK  = uint8(0b11 << 3) // Link select.
)

// State is a decode mode and step pair.
type State struct {
	Mode Mode
	Step uint8
}

func (st State) String() string {
	return fmt.Sprintf("%v.%02o", st.Mode, st.Step)
}

// Control is a five byte microcode control word.
type Control [5]uint8

// Next returns the mode and step decoded for the following cycle.
func (c Control) Next() State {
	return State{Mode: Mode(c[FIELD_NEXT] >> 6), Step: c[FIELD_NEXT] & 077}
}

// Latch returns the register latch enables.
func (c Control) Latch() Latch {
	return Latch(c[FIELD_LATCH])
}

// Select returns the data bus source.
func (c Control) Select() Select {
	return Select(c[FIELD_BUS] & 07)
}

func (c Control) bus(mask uint8) bool {
	return c[FIELD_BUS]&mask != 0
}

// AddrMA reports whether the address bus is driven from MA.
func (c Control) AddrMA() bool { return c.bus(BUS_ADDR_MA) }

// AddrEnable reports whether the address bus is driven.
func (c Control) AddrEnable() bool { return c.bus(BUS_ADDR) }

// Extended reports whether MA and PC latch all 15 bits.
func (c Control) Extended() bool { return c.bus(BUS_EXTENDED) }

// ZeroPage reports whether the address bus is forced into bank 0.
func (c Control) ZeroPage() bool { return c.bus(BUS_ZERO_PAGE) }

// Constant reports the constant select bit.
func (c Control) Constant() bool { return c.bus(BUS_CONSTANT) }

// Misc returns the coprocessor and indicator lines.
func (c Control) Misc() Misc {
	return Misc(c[FIELD_MISC])
}

// Alu returns the ALU operation, link select and modifiers.
func (c Control) Alu() (op AluOp, link LinkOp, shifter bool, ones bool) {
	alu := c[FIELD_ALU]
	op = AluOp(alu & ALU_OP_MASK)
	link = LinkOp((alu & ALU_LINK_MASK) >> ALU_LINK_SHIFT)
	shifter = alu&ALU_SHIFTER != 0
	ones = alu&ALU_ONES != 0
	return
}

// LatchOB reports whether OB and the flags latch this cycle.
func (c Control) LatchOB() bool {
	return c[FIELD_ALU]&ALU_LATCH_OB != 0
}

func (c Control) String() string {
	return fmt.Sprintf("%03o.%03o.%03o.%03o.%03o", c[0], c[1], c[2], c[3], c[4])
}

// Micro is the unpacked form of a control word.
type Micro struct {
	Next     State  // Next decode state.
	Latch    Latch  // Register latch enables.
	Select   Select // Data bus source.
	Address  bool   // Address bus enable.
	AddrMA   bool   // Address from MA, else PC.
	Extended bool   // Latch MA and PC with all 15 bits.
	ZeroPage bool   // Force bank 0 on the address bus.
	Constant bool   // Constant select.
	Misc     Misc   // Coprocessor and indicator lines.
	Alu      AluOp  // ALU op select.
	Link     LinkOp // ALU link select.
	Shifter  bool   // Shifter to the bus.
	Ones     bool   // One's complement mode.
	LatchOB  bool   // Latch OB and flags.
}

func flag8(on bool, mask uint8) (value uint8) {
	if on {
		value = mask
	}
	return
}

// Control packs the microinstruction into a control word.
func (m Micro) Control() (c Control) {
	c[FIELD_NEXT] = uint8(m.Next.Mode)<<6 | m.Next.Step&077
	c[FIELD_LATCH] = uint8(m.Latch)
	c[FIELD_BUS] = uint8(m.Select)&07 |
		flag8(m.AddrMA, BUS_ADDR_MA) |
		flag8(m.Address, BUS_ADDR) |
		flag8(m.Extended, BUS_EXTENDED) |
		flag8(m.ZeroPage, BUS_ZERO_PAGE) |
		flag8(m.Constant, BUS_CONSTANT)
	c[FIELD_MISC] = uint8(m.Misc)
	c[FIELD_ALU] = uint8(m.Alu)&ALU_OP_MASK |
		uint8(m.Link)<<ALU_LINK_SHIFT&ALU_LINK_MASK |
		flag8(m.Shifter, ALU_SHIFTER) |
		flag8(m.Ones, ALU_ONES) |
		flag8(m.LatchOB, ALU_LATCH_OB)
	return
}

// Micro unpacks the control word.
func (c Control) Micro() (m Micro) {
	m = Micro{
		Next:     c.Next(),
		Latch:    c.Latch(),
		Select:   c.Select(),
		Address:  c.AddrEnable(),
		AddrMA:   c.AddrMA(),
		Extended: c.Extended(),
		ZeroPage: c.ZeroPage(),
		Constant: c.Constant(),
		Misc:     c.Misc(),
		LatchOB:  c.LatchOB(),
	}
	m.Alu, m.Link, m.Shifter, m.Ones = c.Alu()
	return
}

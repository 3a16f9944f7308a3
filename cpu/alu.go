// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// AluOp is the arithmetic section operation select.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_CLEAR  = AluOp(0) // clear
	ALU_BMA    = AluOp(1) // bma
	ALU_AMB    = AluOp(2) // amb
	ALU_ADD    = AluOp(3) // add
	ALU_XOR    = AluOp(4) // xor
	ALU_OR     = AluOp(5) // or
	ALU_AND    = AluOp(6) // and
	ALU_PRESET = AluOp(7) // preset
)

// ShiftOp is the shifter operation, the low two bits of the op select.
type ShiftOp int

//go:generate go tool stringer -linecomment -type=ShiftOp
const (
	SHIFT_RAR = ShiftOp(0) // rar
	SHIFT_RAL = ShiftOp(1) // ral
	SHIFT_RTR = ShiftOp(2) // rtr
	SHIFT_RTL = ShiftOp(3) // rtl
)

// LinkOp selects the next Link.
type LinkOp int

//go:generate go tool stringer -linecomment -type=LinkOp
const (
	LINK_KEEP       = LinkOp(0) // keep
	LINK_COMPLEMENT = LinkOp(1) // complement
	LINK_ARITH      = LinkOp(2) // arith
	LINK_SHIFT      = LinkOp(3) // shift
)

// AluInput is the combinational input of the ALU.
type AluInput struct {
	Ob      uint32 // Operand buffer, shifter input and arithmetic A.
	Mb      uint32 // Memory buffer, arithmetic B.
	Link    bool   // Current Link.
	Op      AluOp  // Operation select.
	LinkOp  LinkOp // Link select.
	Shifter bool   // Route the shifter to the output.
	Ones    bool   // One's complement mode.
}

// AluOutput is the combinational output of the ALU.
type AluOutput struct {
	Arith     uint32 // Arithmetic section result.
	ArithLink bool   // Arithmetic section carry out.
	Shift     uint32 // Shifter result.
	ShiftLink bool   // Bit rotated out of the shifter.
	Out       uint32 // Result routed to the data bus.
	Link      bool   // Next Link.
}

// Shift returns the shifter operation encoded in the op select.
func (op AluOp) Shift() ShiftOp {
	return ShiftOp(op & 3)
}

func bit(value uint32, n int) uint32 {
	return (value >> n) & 1
}

// Evaluate computes the ALU outputs.
func (in AluInput) Evaluate() (out AluOutput) {
	ob := in.Ob & WORD_MASK
	mb := in.Mb & WORD_MASK

	var link uint32
	if in.Link {
		link = 1
	}

	a := int64(ob) | int64(link)<<18
	b := int64(mb)

	var raw int64
	var carry bool
	switch in.Op {
	case ALU_CLEAR:
		raw = 0
	case ALU_BMA:
		raw = (b - a) - 1
	case ALU_AMB:
		raw = (a - b) - 1
	case ALU_ADD:
		raw = a + b
		carry = (ob+mb)&WORD_CARRY != 0
	case ALU_XOR:
		raw = a ^ b
	case ALU_OR:
		raw = a | b
	case ALU_AND:
		raw = a & b
	case ALU_PRESET:
		raw = 01777777
	}

	out.Arith = uint32(raw) & WORD_MASK
	if in.Ones {
		if carry || in.Op&4 != 0 {
			out.Arith = (out.Arith + 1) & WORD_MASK
		}
		overflow := bit(ob, 17) == bit(mb, 17) && bit(out.Arith, 17) != bit(ob, 17)
		out.ArithLink = overflow || in.Link
	} else {
		out.ArithLink = (uint64(raw)>>18)&1 != 0
	}

	switch in.Op.Shift() {
	case SHIFT_RAR:
		out.Shift = ob>>1 | link<<17
		out.ShiftLink = bit(ob, 0) != 0
	case SHIFT_RAL:
		out.Shift = ob<<1 | link
		out.ShiftLink = bit(ob, 17) != 0
	case SHIFT_RTR:
		out.Shift = ob>>2 | link<<16 | bit(ob, 0)<<17
		out.ShiftLink = bit(ob, 1) != 0
	case SHIFT_RTL:
		out.Shift = ob<<2 | link<<1 | bit(ob, 17)
		out.ShiftLink = bit(ob, 16) != 0
	}
	out.Shift &= WORD_MASK

	switch in.LinkOp {
	case LINK_KEEP:
		out.Link = in.Link
	case LINK_COMPLEMENT:
		out.Link = !in.Link
	case LINK_ARITH:
		out.Link = out.ArithLink
	case LINK_SHIFT:
		out.Link = out.ShiftLink
	}

	if in.Shifter {
		out.Out = out.Shift
	} else {
		out.Out = out.Arith
	}

	return
}

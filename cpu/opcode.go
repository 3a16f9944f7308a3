package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the 4-bit instruction opcode in bits 14-17.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_CAL = Opcode(0)  // cal
	OP_DAC = Opcode(1)  // dac
	OP_JMS = Opcode(2)  // jms
	OP_DZM = Opcode(3)  // dzm
	OP_LAC = Opcode(4)  // lac
	OP_XOR = Opcode(5)  // xor
	OP_ADD = Opcode(6)  // add
	OP_TAD = Opcode(7)  // tad
	OP_XCT = Opcode(8)  // xct
	OP_ISZ = Opcode(9)  // isz
	OP_AND = Opcode(10) // and
	OP_SAD = Opcode(11) // sad
	OP_JMP = Opcode(12) // jmp
	OP_EAE = Opcode(13) // eae
	OP_IOT = Opcode(14) // iot
	OP_OPR = Opcode(15) // opr
)

// Indirectable reports whether the opcode shares the indirect addressing prefix.
func (op Opcode) Indirectable() bool {
	return op >= OP_DAC && op <= OP_JMP
}

// OPR microinstruction bits.
const (
	OPR_CMA = uint32(1 << 0)  // Complement AC.
	OPR_CML = uint32(1 << 1)  // Complement Link.
	OPR_OAS = uint32(1 << 2)  // OR data switches into AC.
	OPR_RAL = uint32(1 << 3)  // Rotate AC left.
	OPR_RAR = uint32(1 << 4)  // Rotate AC right.
	OPR_HLT = uint32(1 << 5)  // Halt.
	OPR_SMA = uint32(1 << 6)  // Skip on minus AC.
	OPR_SZA = uint32(1 << 7)  // Skip on zero AC.
	OPR_SNL = uint32(1 << 8)  // Skip on non-zero Link.
	OPR_SKP = uint32(1 << 9)  // Reverse the skip sense.
	OPR_RTX = uint32(1 << 10) // Rotate twice.
	OPR_CLL = uint32(1 << 11) // Clear Link.
	OPR_CLA = uint32(1 << 12) // Clear AC.
)

// IOT address fields.
const (
	IOT_PULSE_MASK = uint32(07)  // Pulses in bits 0-2.
	IOT_CLEAR_AC   = uint32(010) // Clear AC before the transfer.
	IOT_SUBDEVICE  = 4           // Subdevice in bits 4-5.
	IOT_DEVICE     = 6           // Device in bits 6-11.
)

// Code is an 18-bit instruction word.
type Code uint32

// MakeCode assembles a memory reference instruction.
func MakeCode(op Opcode, indirect bool, addr uint32) Code {
	word := uint32(op)<<IR_OPCODE_SHIFT | addr&IR_ADDRESS
	if indirect {
		word |= IR_INDIRECT
	}
	return Code(word)
}

// MakeCodeOpr assembles an OPR microinstruction.
func MakeCodeOpr(bits uint32) Code {
	return Code(uint32(OP_OPR)<<IR_OPCODE_SHIFT | bits&IR_ADDRESS)
}

// MakeCodeIot assembles an IOT instruction.
func MakeCodeIot(device, subdevice int, clear bool, pulses uint32) Code {
	word := uint32(OP_IOT)<<IR_OPCODE_SHIFT |
		uint32(device&077)<<IOT_DEVICE |
		uint32(subdevice&3)<<IOT_SUBDEVICE |
		pulses&IOT_PULSE_MASK
	if clear {
		word |= IOT_CLEAR_AC
	}
	return Code(word)
}

// Opcode returns the instruction opcode.
func (code Code) Opcode() Opcode {
	return Opcode((uint32(code) >> IR_OPCODE_SHIFT) & 017)
}

// Indirect returns the indirect bit.
func (code Code) Indirect() bool {
	return uint32(code)&IR_INDIRECT != 0
}

// Address returns the 13-bit page relative address.
func (code Code) Address() uint32 {
	return uint32(code) & IR_ADDRESS
}

// IsLaw reports whether the word is a LAW (load accumulator with word).
func (code Code) IsLaw() bool {
	return code.Opcode() == OP_OPR && code.Indirect()
}

// oprNames are the OPR microinstruction mnemonics, in disassembly order.
var oprNames = []struct {
	name string
	bits uint32
}{
	{"cla", OPR_CLA},
	{"cll", OPR_CLL},
	{"cma", OPR_CMA},
	{"cml", OPR_CML},
	{"oas", OPR_OAS},
	{"rtl", OPR_RAL | OPR_RTX},
	{"rtr", OPR_RAR | OPR_RTX},
	{"ral", OPR_RAL},
	{"rar", OPR_RAR},
	{"sma", OPR_SMA},
	{"sza", OPR_SZA},
	{"snl", OPR_SNL},
	{"skp", OPR_SKP},
	{"hlt", OPR_HLT},
}

// String disassembles the instruction.
func (code Code) String() string {
	op := code.Opcode()
	switch {
	case code.IsLaw():
		return fmt.Sprintf("law %05o", code.Address())
	case op == OP_OPR:
		bits := code.Address()
		if bits == 0 {
			return "nop"
		}
		var names []string
		for _, opr := range oprNames {
			if bits&opr.bits == opr.bits {
				names = append(names, opr.name)
				bits &^= opr.bits
			}
		}
		if bits != 0 {
			names = append(names, fmt.Sprintf("%o", bits))
		}
		return strings.Join(names, " ")
	case op == OP_IOT:
		return fmt.Sprintf("iot %06o", uint32(code)&^(017<<IR_OPCODE_SHIFT))
	case code.Indirect():
		return fmt.Sprintf("%v i %05o", op, code.Address())
	default:
		return fmt.Sprintf("%v %05o", op, code.Address())
	}
}

// Statement is a line of assembled code with its source location and generated words.
type Statement struct {
	LineNo    int
	Address   uint32
	Words     []string
	Codes     []Code
	LinkLabel string
}

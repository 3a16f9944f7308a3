// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Input is the 13-bit microcode input word. Bits 11-12 hold the decode
// mode; the meaning of bits 0-10 depends on the mode.
type Input uint16

const (
	IN_MODE_SHIFT = 11
)

// SERVICE mode inputs.
const (
	IN_SRV_STEP        = Input(077)     // Step, bits 0-5.
	IN_SRV_IRQ         = Input(1 << 6)  // Interrupt pending.
	IN_SRV_PANEL_SHIFT = 7              // Front panel state, bits 7-10, steps below 32.
	IN_SRV_ZERO        = Input(1 << 7)  // Zero flag, steps 32 and up.
	IN_SRV_SKIP        = Input(1 << 8)  // OPR skip flag, steps 32 and up.
	IN_SRV_ACK         = Input(1 << 9)  // Coprocessor acknowledge, steps 32 and up.
	IN_SRV_IOCP_SKIP   = Input(1 << 10) // Coprocessor skip, steps 32 and up.
)

// INSTRUCTION mode inputs.
const (
	IN_INS_STEP         = Input(07)      // Step, bits 0-2.
	IN_INS_IR12         = Input(1 << 3)  // IR bit 12.
	IN_INS_INDIRECT     = Input(1 << 4)  // IR bit 13.
	IN_INS_OPCODE_SHIFT = 5              // IR bits 14-17, in bits 5-8.
	IN_INS_EXTEND       = Input(1 << 9)  // Extend mode.
	IN_INS_MAAI         = Input(1 << 10) // MA is in the auto-index range.
)

// OPERATE mode inputs.
const (
	IN_OPR_STEP = Input(1 << 0)
	IN_OPR_CMA  = Input(1 << 1)
	IN_OPR_CML  = Input(1 << 2)
	IN_OPR_OAS  = Input(1 << 3)
	IN_OPR_RAL  = Input(1 << 4)
	IN_OPR_RAR  = Input(1 << 5)
	IN_OPR_HLT  = Input(1 << 6)
	IN_OPR_AROT = Input(1 << 7)
	IN_OPR_CLL  = Input(1 << 8)
	IN_OPR_CLA  = Input(1 << 9)
	IN_OPR_LINK = Input(1 << 10)
)

// SRV_FLAGS is the first SERVICE step whose input carries flags instead
// of the front panel state.
const SRV_FLAGS = 32

// Mode returns the decode mode.
func (in Input) Mode() Mode {
	return Mode((in >> IN_MODE_SHIFT) & 3)
}

// Has reports whether all of the bits in mask are set.
func (in Input) Has(mask Input) bool {
	return in&mask == mask
}

// State returns the decode mode and step.
func (in Input) State() (st State) {
	st.Mode = in.Mode()
	switch st.Mode {
	case MODE_SERVICE:
		st.Step = uint8(in & IN_SRV_STEP)
	case MODE_INSTRUCTION:
		st.Step = uint8(in & IN_INS_STEP)
	case MODE_OPERATE:
		st.Step = uint8(in & IN_OPR_STEP)
	}
	return
}

// Panel returns the front panel state of a SERVICE input.
func (in Input) Panel() PanelState {
	return PanelState((in >> IN_SRV_PANEL_SHIFT) & 017)
}

// Opcode returns the opcode of an INSTRUCTION input.
func (in Input) Opcode() Opcode {
	return Opcode((in >> IN_INS_OPCODE_SHIFT) & 017)
}

// MakeInput builds an input word from a state and its mode specific bits.
func MakeInput(st State, bits Input) (in Input) {
	in = Input(st.Mode&3) << IN_MODE_SHIFT
	switch st.Mode {
	case MODE_SERVICE:
		in |= Input(st.Step) & IN_SRV_STEP
	case MODE_INSTRUCTION:
		in |= Input(st.Step) & IN_INS_STEP
	case MODE_OPERATE:
		in |= Input(st.Step) & IN_OPR_STEP
	}
	in |= bits &^ (3 << IN_MODE_SHIFT)
	return
}

// PanelInput places a front panel state into SERVICE input bits.
func PanelInput(state PanelState) Input {
	return Input(state&017) << IN_SRV_PANEL_SHIFT
}

// OpcodeInput places an opcode into INSTRUCTION input bits.
func OpcodeInput(op Opcode) Input {
	return Input(op&017) << IN_INS_OPCODE_SHIFT
}

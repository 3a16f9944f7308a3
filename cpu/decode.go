// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// SERVICE mode steps.
const (
	SRV_RESET_ENTRY    = 0
	SRV_RESET_CLEAR    = 1
	SRV_FETCH          = 2
	SRV_PC_NEXT        = 3
	SRV_HALT           = 4
	SRV_AWAIT_NEUTRAL  = 5
	SRV_SINGLE_STEP    = 6
	SRV_CONTINUE       = 7
	SRV_GOTO           = 8
	SRV_EXAMINE        = 9
	SRV_EXAMINE_NEXT   = 10
	SRV_EXAMINE_READ   = 11
	SRV_DEPOSIT        = 12
	SRV_DEPOSIT_NEXT   = 13
	SRV_DEPOSIT_WRITE  = 14
	SRV_EXECUTE        = 15
	SRV_EXECUTE_SETTLE = 16
	SRV_INT_ENTRY      = 17
	SRV_INT_SAVE       = 18
	SRV_INT_STORE      = 19
	SRV_INT_VECTOR     = 20
	SRV_SKIP_ZERO      = 32
	SRV_SKIP_NONZERO   = 33
	SRV_SKIP_OPR       = 34
	SRV_IOT_WAIT       = 40
	SRV_IOT_READ       = 41
	SRV_IOT_SKIP       = 42
)

// INSTRUCTION mode steps shared by the indirectable opcodes.
const (
	INS_BEGIN      = 0 // Indirection, or the first step of CAL, IOT and OPR.
	INS_INDEX_INC  = 1 // Auto-index increment and store.
	INS_INDIR_DONE = 2 // First step after the effective address is in MA.
)

// Common decode states.
var (
	stateFetch   = State{Mode: MODE_SERVICE, Step: SRV_FETCH}
	stateHalt    = State{Mode: MODE_SERVICE, Step: SRV_HALT}
	stateExecute = State{Mode: MODE_INSTRUCTION, Step: INS_BEGIN}
)

func service(step uint8) State {
	return State{Mode: MODE_SERVICE, Step: step}
}

func instruction(step uint8) State {
	return State{Mode: MODE_INSTRUCTION, Step: step}
}

func operate(step uint8) State {
	return State{Mode: MODE_OPERATE, Step: step}
}

// Decode maps a microcode input word to its control word. Inputs with no
// table entry decode to a plain return to fetch, with ok false.
func Decode(in Input) (c Control, ok bool) {
	var m Micro

	switch in.Mode() {
	case MODE_SERVICE:
		m, ok = decodeService(in)
	case MODE_INSTRUCTION:
		m, ok = decodeInstruction(in)
	case MODE_OPERATE:
		m, ok = decodeOperate(in)
	}

	if !ok {
		m = Micro{Next: stateFetch}
	}

	c = m.Control()

	return
}

// pcIncrement is PC + 1 through the crossbar.
func pcIncrement(next State) Micro {
	return Micro{
		Next:     next,
		Address:  true,
		Select:   SELECT_CROSS,
		Constant: true,
		Latch:    LATCH_PC,
		Extended: true,
	}
}

// fetch reads core[PC] into IR, MA, OB and MB.
func fetch(next State) Micro {
	return Micro{
		Next:    next,
		Address: true,
		Select:  SELECT_CORE,
		Latch:   LATCH_IR | LATCH_MA | LATCH_MB,
		LatchOB: true,
	}
}

func decodeService(in Input) (m Micro, ok bool) {
	step := uint8(in & IN_SRV_STEP)
	panel := in.Panel()

	ok = true
	switch step {
	case SRV_RESET_ENTRY:
		m = Micro{Next: service(SRV_RESET_CLEAR)}
	case SRV_RESET_CLEAR:
		m = Micro{
			Next:     stateFetch,
			Select:   SELECT_ALU,
			Alu:      ALU_CLEAR,
			Link:     LINK_ARITH,
			LatchOB:  true,
			Latch:    LATCH_AC | LATCH_PC | LATCH_MA | LATCH_MQ | LATCH_STEP,
			Extended: true,
		}
	case SRV_FETCH:
		switch {
		case panel == PANEL_STOP || panel == PANEL_EXECUTE:
			m = Micro{Next: service(SRV_AWAIT_NEUTRAL)}
		case in.Has(IN_SRV_IRQ):
			m = Micro{Next: service(SRV_INT_ENTRY)}
		default:
			m = fetch(service(SRV_PC_NEXT))
		}
	case SRV_PC_NEXT:
		m = pcIncrement(stateExecute)
	case SRV_HALT:
		m = Micro{Misc: MISC_HALT}
		switch panel {
		case PANEL_STOP:
			m.Next = service(SRV_SINGLE_STEP)
		case PANEL_CONTINUE:
			m.Next = service(SRV_CONTINUE)
		case PANEL_START:
			m.Next = service(SRV_GOTO)
		case PANEL_EXAMINE:
			m.Next = service(SRV_EXAMINE)
		case PANEL_EXAMINE_NEXT:
			m.Next = service(SRV_EXAMINE_NEXT)
		case PANEL_DEPOSIT:
			m.Next = service(SRV_DEPOSIT)
		case PANEL_DEPOSIT_NEXT:
			m.Next = service(SRV_DEPOSIT_NEXT)
		case PANEL_EXECUTE:
			m.Next = service(SRV_EXECUTE)
		default:
			// Neutral, and read-in which the host performs.
			m.Next = stateHalt
		}
	case SRV_AWAIT_NEUTRAL:
		m = Micro{Misc: MISC_HALT, Next: service(SRV_AWAIT_NEUTRAL)}
		if panel == PANEL_NEUTRAL {
			m.Next = stateHalt
		}
	case SRV_SINGLE_STEP:
		m = fetch(service(SRV_PC_NEXT))
	case SRV_CONTINUE:
		m = Micro{Next: stateFetch}
	case SRV_GOTO:
		m = Micro{
			Next:     stateFetch,
			Select:   SELECT_EMPTY,
			Constant: true,
			Latch:    LATCH_PC,
			Extended: true,
		}
	case SRV_EXAMINE, SRV_DEPOSIT:
		next := service(SRV_EXAMINE_READ)
		if step == SRV_DEPOSIT {
			next = service(SRV_DEPOSIT_WRITE)
		}
		m = Micro{
			Next:     next,
			Select:   SELECT_EMPTY,
			Constant: true,
			Latch:    LATCH_MA,
			Extended: true,
		}
	case SRV_EXAMINE_NEXT, SRV_DEPOSIT_NEXT:
		next := service(SRV_EXAMINE_READ)
		if step == SRV_DEPOSIT_NEXT {
			next = service(SRV_DEPOSIT_WRITE)
		}
		m = Micro{
			Next:     next,
			Address:  true,
			AddrMA:   true,
			Select:   SELECT_CROSS,
			Constant: true,
			Latch:    LATCH_MA,
			Extended: true,
		}
	case SRV_EXAMINE_READ:
		m = Micro{
			Next:    service(SRV_AWAIT_NEUTRAL),
			Address: true,
			AddrMA:  true,
			Select:  SELECT_CORE,
			Latch:   LATCH_MB,
		}
	case SRV_DEPOSIT_WRITE:
		m = Micro{
			Next:    service(SRV_AWAIT_NEUTRAL),
			Address: true,
			AddrMA:  true,
			Select:  SELECT_EMPTY,
			Latch:   LATCH_CORE | LATCH_MB,
		}
	case SRV_EXECUTE:
		m = Micro{
			Next:    service(SRV_EXECUTE_SETTLE),
			Select:  SELECT_EMPTY,
			Latch:   LATCH_IR | LATCH_MA | LATCH_MB,
			LatchOB: true,
		}
	case SRV_EXECUTE_SETTLE:
		m = Micro{Next: stateExecute}
	case SRV_INT_ENTRY:
		// MA is cleared to INT_VECTOR.
		m = Micro{
			Next:     service(SRV_INT_SAVE),
			Select:   SELECT_ALU,
			Alu:      ALU_CLEAR,
			Latch:    LATCH_MA,
			Extended: true,
			Misc:     MISC_INT_DETECT,
		}
	case SRV_INT_SAVE:
		m = Micro{
			Next:    service(SRV_INT_STORE),
			Address: true,
			Select:  SELECT_CROSS,
			Latch:   LATCH_MB,
			LatchOB: true,
		}
	case SRV_INT_STORE:
		m = Micro{
			Next:    service(SRV_INT_VECTOR),
			Address: true,
			AddrMA:  true,
			Select:  SELECT_ALU,
			Alu:     ALU_OR,
			Latch:   LATCH_CORE,
		}
	case SRV_INT_VECTOR:
		m = Micro{
			Next:     stateFetch,
			Address:  true,
			AddrMA:   true,
			Select:   SELECT_CROSS,
			Constant: true,
			Latch:    LATCH_PC,
			Extended: true,
		}
	case SRV_SKIP_ZERO:
		m = Micro{Next: stateFetch}
		if in.Has(IN_SRV_ZERO) {
			m = pcIncrement(stateFetch)
		}
	case SRV_SKIP_NONZERO:
		m = Micro{Next: stateFetch}
		if !in.Has(IN_SRV_ZERO) {
			m = pcIncrement(stateFetch)
		}
	case SRV_SKIP_OPR:
		m = Micro{Next: instruction(INS_INDIR_DONE)}
		if in.Has(IN_SRV_SKIP) {
			m = pcIncrement(instruction(INS_INDIR_DONE))
		}
	case SRV_IOT_WAIT:
		m = iotRequest(service(SRV_IOT_WAIT))
		if in.Has(IN_SRV_ACK) {
			m.Next = service(SRV_IOT_READ)
		}
	case SRV_IOT_READ:
		m = Micro{
			Next:   stateFetch,
			Select: SELECT_EMPTY,
			Latch:  LATCH_AC,
			Misc:   MISC_IOCP_ACK | MISC_IOCP_READ,
		}
		if in.Has(IN_SRV_IOCP_SKIP) {
			m.Next = service(SRV_IOT_SKIP)
		}
	case SRV_IOT_SKIP:
		m = pcIncrement(stateFetch)
	default:
		ok = false
	}

	return
}

// iotRequest presents AC and the IOT address to the coprocessor.
func iotRequest(next State) Micro {
	return Micro{
		Next:    next,
		Address: true,
		AddrMA:  true,
		Select:  SELECT_AC,
		Misc:    MISC_IOCP_REQ | MISC_IOCP_XFER,
	}
}

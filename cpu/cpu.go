// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/rdp9/io"
)

// Switches are the front panel switch registers.
type Switches struct {
	Data    uint32 // 18-bit data switches.
	Address uint32 // 15-bit address switches.
}

// Cpu is the simulation context for the RDP-9 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	// Diagnostic receives bus protocol and decode diagnostics. When nil,
	// diagnostics are logged.
	Diagnostic func(err error)

	Core [CORE_SIZE]uint32 // Core memory.

	Ac   uint32 // Accumulator.
	Mb   uint32 // Memory buffer.
	Mq   uint32 // Multiplier quotient.
	Pc   uint32 // Program counter.
	Ma   uint32 // Memory address.
	Ir   uint32 // Instruction register.
	Ob   uint32 // Operand buffer.
	Step uint32 // Step counter.

	Link bool // Link.
	Zero bool // OB is zero.
	Sign bool // OB is negative.
	Skip bool // OPR skip condition.
	Maai bool // MA is an auto-index location.

	Extend   bool      // Extend mode.
	Switches Switches  // Front panel switch registers.
	Panel    Panel     // Front panel momentary controls.
	Iocp     io.Status // Coprocessor status lines.

	DataBus Bus       // Data bus.
	AddrBus Bus       // Address bus.
	Alu     AluOutput // Last ALU evaluation.

	Cycles uint64 // Cycles since reset.

	current      Control
	next         Control
	currentState State
	nextState    State
	input        Input
}

var _ io.Memory = (*Cpu)(nil)

// NewCpu creates a new CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.DataBus.Name = "data"
	cpu.AddrBus.Name = "address"

	return
}

func (cpu *Cpu) diagnose(err error) {
	if err == nil {
		return
	}

	if cpu.Diagnostic != nil {
		cpu.Diagnostic(err)
		return
	}

	log.Printf("cpu: %v %v", cpu.currentState, err)
}

// Reset installs the reset control word and propagates it. Core memory
// is untouched; the reset microprogram clears the registers.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.current = Control{}
	cpu.currentState = State{}
	cpu.Cycles = 0

	cpu.Propagate()
}

// Load reads a core word.
func (cpu *Cpu) Load(addr uint32) uint32 {
	return cpu.Core[addr&ADDR_MASK]
}

// Store writes a core word.
func (cpu *Cpu) Store(addr uint32, value uint32) {
	cpu.Core[addr&ADDR_MASK] = value & WORD_MASK
}

// Current returns the control word being executed, and its decode state.
func (cpu *Cpu) Current() (c Control, st State) {
	return cpu.current, cpu.currentState
}

// Next returns the control word decoded for the following cycle, and its decode state.
func (cpu *Cpu) Next() (c Control, st State) {
	return cpu.next, cpu.nextState
}

// Halted reports whether the current control word drives the halt indicator.
func (cpu *Cpu) Halted() bool {
	return cpu.current.Misc()&MISC_HALT != 0
}

// Signals returns the coprocessor lines of the current control word.
func (cpu *Cpu) Signals() (sig io.Signals) {
	misc := cpu.current.Misc()

	sig = io.Signals{
		Request:         misc&MISC_IOCP_REQ != 0,
		Acknowledge:     misc&MISC_IOCP_ACK != 0,
		Transfer:        misc&MISC_IOCP_XFER != 0,
		InterruptDetect: misc&MISC_INT_DETECT != 0,
	}

	if sig.Transfer {
		sig.Address = cpu.AddrBus.Value()
		sig.Data = cpu.DataBus.Value()
	}

	return
}

// microInput builds the decode input for the state of the next control word.
func (cpu *Cpu) microInput(st State) (in Input) {
	var bits Input

	switch st.Mode {
	case MODE_SERVICE:
		if cpu.Iocp.Interrupt {
			bits |= IN_SRV_IRQ
		}
		if st.Step < SRV_FLAGS {
			bits |= PanelInput(cpu.Panel.State())
		} else {
			if cpu.Zero {
				bits |= IN_SRV_ZERO
			}
			if cpu.Skip {
				bits |= IN_SRV_SKIP
			}
			if cpu.Iocp.Ack {
				bits |= IN_SRV_ACK
			}
			if cpu.Iocp.Skip {
				bits |= IN_SRV_IOCP_SKIP
			}
		}
	case MODE_INSTRUCTION:
		bits |= Input((cpu.Ir>>12)&1) << 3
		bits |= Input((cpu.Ir>>13)&1) << 4
		bits |= OpcodeInput(Opcode((cpu.Ir >> IR_OPCODE_SHIFT) & 017))
		if cpu.Extend {
			bits |= IN_INS_EXTEND
		}
		if cpu.Maai {
			bits |= IN_INS_MAAI
		}
	case MODE_OPERATE:
		ir := cpu.Ir
		for _, opr := range []struct {
			bit uint32
			in  Input
		}{
			{OPR_CMA, IN_OPR_CMA},
			{OPR_CML, IN_OPR_CML},
			{OPR_OAS, IN_OPR_OAS},
			{OPR_RAL, IN_OPR_RAL},
			{OPR_RAR, IN_OPR_RAR},
			{OPR_HLT, IN_OPR_HLT},
			{OPR_RTX, IN_OPR_AROT},
			{OPR_CLL, IN_OPR_CLL},
			{OPR_CLA, IN_OPR_CLA},
		} {
			if ir&opr.bit != 0 {
				bits |= opr.in
			}
		}
		if cpu.Link {
			bits |= IN_OPR_LINK
		}
	}

	in = MakeInput(st, bits)

	return
}

// Propagate computes the buses and the next control word from the
// current control word and the latched registers. Registers do not change.
func (cpu *Cpu) Propagate() {
	cpu.DataBus.Float()
	cpu.AddrBus.Float()

	c := cpu.current

	cpu.nextState = c.Next()
	cpu.input = cpu.microInput(cpu.nextState)
	next, ok := Decode(cpu.input)
	if !ok {
		cpu.diagnose(ErrDecode(cpu.input))
	}
	cpu.next = next

	op, link, shifter, ones := c.Alu()
	cpu.Alu = AluInput{
		Ob:      cpu.Ob,
		Mb:      cpu.Mb,
		Link:    cpu.Link,
		Op:      op,
		LinkOp:  link,
		Shifter: shifter,
		Ones:    ones,
	}.Evaluate()

	if c.AddrEnable() {
		addr := cpu.Pc
		if c.AddrMA() {
			addr = cpu.Ma
		}
		if c.ZeroPage() {
			addr &= OFFSET_MASK
		}
		cpu.diagnose(cpu.AddrBus.Assert(addr & ADDR_MASK))
	}

	var data uint32
	switch c.Select() {
	case SELECT_EMPTY:
		switch {
		case c.Misc()&MISC_IOCP_READ != 0:
			data = cpu.Iocp.Value
		case c.Constant():
			data = cpu.Switches.Address & ADDR_MASK
		default:
			data = cpu.Switches.Data
		}
	case SELECT_AC:
		data = cpu.Ac
	case SELECT_STEP:
		data = cpu.Step
	case SELECT_MQ:
		data = cpu.Mq
	case SELECT_CROSS:
		addr, err := cpu.AddrBus.Read()
		cpu.diagnose(err)
		var inc uint32
		if c.Constant() {
			inc = 1
		}
		data = (addr+inc)&OFFSET_MASK | addr&BANK_MASK
	case SELECT_ALU:
		data = cpu.Alu.Out
	case SELECT_CORE:
		addr, err := cpu.AddrBus.Read()
		cpu.diagnose(err)
		data = cpu.Core[addr&ADDR_MASK]
	case SELECT_CONST:
		data = 007
		if c.Constant() {
			data = CAL_VECTOR
		}
	}
	cpu.diagnose(cpu.DataBus.Assert(data & WORD_MASK))

	if cpu.Verbose {
		log.Printf("cpu: %v %+v -> %v %v", cpu.currentState, c.Micro(), cpu.nextState, cpu.next)
	}
}

// Latch commits the registers selected by the current control word from
// the buses computed by the last Propagate, then advances to the next
// control word.
func (cpu *Cpu) Latch() {
	c := cpu.current
	latch := c.Latch()
	extended := c.Extended()

	var data uint32
	if latch != 0 || c.LatchOB() {
		var err error
		data, err = cpu.DataBus.Read()
		cpu.diagnose(err)
	}

	if latch&LATCH_IR != 0 {
		cpu.Ir = data
	}

	if latch&LATCH_MA != 0 {
		if extended {
			cpu.Ma = data & ADDR_MASK
		} else {
			cpu.Ma = PageRelative(cpu.Pc, data)
		}
		cpu.Maai = IsAutoIndex(cpu.Ma)
	}

	if latch&LATCH_PC != 0 {
		if extended {
			cpu.Pc = data & ADDR_MASK
		} else {
			cpu.Pc = PageRelative(cpu.Pc, data)
		}
	}

	if latch&LATCH_AC != 0 {
		cpu.Ac = data
	}

	if latch&LATCH_STEP != 0 {
		cpu.Step = data & STEP_MASK
	}

	if latch&LATCH_MQ != 0 {
		cpu.Mq = data
	}

	if latch&LATCH_MB != 0 {
		cpu.Mb = data
	}

	if latch&LATCH_CORE != 0 {
		addr, err := cpu.AddrBus.Read()
		cpu.diagnose(err)
		cpu.Core[addr&ADDR_MASK] = data & WORD_MASK
	}

	cpu.Skip = SkipCondition(cpu.Ir, cpu.Zero, cpu.Sign, cpu.Link)

	if c.LatchOB() {
		cpu.Ob = data
		cpu.Zero = data == 0
		cpu.Sign = data&WORD_SIGN != 0
		cpu.Link = cpu.Alu.Link
	}

	cpu.current = cpu.next
	cpu.currentState = cpu.nextState
	cpu.Cycles++
}

// Cycle runs one latch and propagate.
func (cpu *Cpu) Cycle() {
	cpu.Latch()
	cpu.Propagate()
}

// SkipCondition evaluates the OPR skip selection of an instruction word.
func SkipCondition(ir uint32, zero, sign, link bool) bool {
	cond := (zero && ir&OPR_SZA != 0) ||
		(sign && ir&OPR_SMA != 0) ||
		(link && ir&OPR_SNL != 0)
	return cond != (ir&OPR_SKP != 0)
}

// Snapshot is a copy of the visible processor state, taken after a propagate.
type Snapshot struct {
	Ac, Mb, Mq, Pc, Ma, Ir, Ob, Step uint32

	Link, Zero, Sign, Skip, Maai bool

	Extend   bool
	Halted   bool
	Switches Switches
	Panel    PanelState

	DataBus, AddrBus uint32

	Current, Next           Control
	CurrentState, NextState State
	Input                   Input

	Cycles uint64
}

// Snapshot returns the visible processor state.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Ac: cpu.Ac, Mb: cpu.Mb, Mq: cpu.Mq, Pc: cpu.Pc, Ma: cpu.Ma,
		Ir: cpu.Ir, Ob: cpu.Ob, Step: cpu.Step,
		Link: cpu.Link, Zero: cpu.Zero, Sign: cpu.Sign, Skip: cpu.Skip, Maai: cpu.Maai,
		Extend:       cpu.Extend,
		Halted:       cpu.Halted(),
		Switches:     cpu.Switches,
		Panel:        cpu.Panel.State(),
		DataBus:      cpu.DataBus.Value(),
		AddrBus:      cpu.AddrBus.Value(),
		Current:      cpu.current,
		Next:         cpu.next,
		CurrentState: cpu.currentState,
		NextState:    cpu.nextState,
		Input:        cpu.input,
		Cycles:       cpu.Cycles,
	}

	return
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String returns the snapshot as front panel text.
func (snap Snapshot) String() (text string) {
	text += fmt.Sprintf("   pc: %05o    ma: %05o    ir: %06o %v\n", snap.Pc, snap.Ma, snap.Ir, Code(snap.Ir))
	text += fmt.Sprintf("   ac: %06o   mb: %06o   mq: %06o   ob: %06o\n", snap.Ac, snap.Mb, snap.Mq, snap.Ob)
	text += fmt.Sprintf(" link: %d  zero: %d  sign: %d  skip: %d  maai: %d  halt: %d\n",
		b2i(snap.Link), b2i(snap.Zero), b2i(snap.Sign), b2i(snap.Skip), b2i(snap.Maai), b2i(snap.Halted))
	text += fmt.Sprintf("  cur: %v %v\n", snap.CurrentState, snap.Current)
	text += fmt.Sprintf(" next: %v %v\n", snap.NextState, snap.Next)
	text += fmt.Sprintf("  sw: data %06o addr %05o panel %v\n", snap.Switches.Data, snap.Switches.Address, snap.Panel)
	return
}

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
	"sync"

	"github.com/ezrec/rdp9/cpu"
	"github.com/ezrec/rdp9/internal"
	"github.com/ezrec/rdp9/io"
)

const (
	CYCLES_PER_TICK = 20000 // Cycles per 20ms host tick, at 1MHz.
	PANEL_TICKS     = 2     // Host ticks a panel control is held by Press.
)

var _emulator_defines = map[string]string{
	"CORE_SIZE":       fmt.Sprintf("0%o", cpu.CORE_SIZE),
	"CYCLES_PER_TICK": fmt.Sprintf("0d%v", CYCLES_PER_TICK),
}

// Emulator state. CPU + coprocessor + devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Coprocessor io.Coprocessor // I/O coprocessor.
	Clock       io.Clock       // Real-time clock, device 0 and DRQ channel 0.
	TapeReader  io.TapeReader  // Paper-tape reader, device 1.
	Keyboard    io.Keyboard    // Console keyboard, device 3.
	Teleprinter io.Teleprinter // Console teleprinter, device 4.

	CyclesPerTick int // Cycles run by each Tick; CYCLES_PER_TICK when zero.

	mutex   sync.Mutex
	tickers []io.Ticker
}

// NewEmulator creates a new emulator, with the boot program in core.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	cp := &emu.Coprocessor
	cp.Device[io.DEVICE_CLOCK] = &emu.Clock
	cp.Device[io.DEVICE_TAPE_READER] = &emu.TapeReader
	cp.Device[io.DEVICE_KEYBOARD] = &emu.Keyboard
	cp.Device[io.DEVICE_TELEPRINTER] = &emu.Teleprinter
	cp.Drq[io.DRQ_CLOCK] = &emu.Clock
	cp.Memory = emu.Cpu
	cp.Rtc = &emu.Clock

	emu.tickers = []io.Ticker{
		&emu.Clock,
		&emu.TapeReader,
		&emu.Keyboard,
		&emu.Teleprinter,
	}

	for _, boot := range BootProgram {
		emu.Cpu.Store(boot.Address, boot.Word)
	}

	emu.Reset()

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
		io.Defines(),
	)
}

// Assemble assembles source with the emulator predefines.
func (emu *Emulator) Assemble(source string) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(strings.NewReader(source))

	return
}

// SetDiagnostic routes the CPU and coprocessor diagnostics to fn.
func (emu *Emulator) SetDiagnostic(fn func(err error)) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.Cpu.Diagnostic = fn
	emu.Coprocessor.Diagnostic = fn
}

// Reset resets the processor, the coprocessor and the devices, and
// releases the front panel controls. Core and the tape position are kept.
func (emu *Emulator) Reset() {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.verbose()

	emu.Coprocessor.Reset()
	emu.Clock.Reset()
	emu.TapeReader.Reset()
	emu.Keyboard.Reset()
	emu.Teleprinter.Reset()

	emu.Cpu.Iocp = io.Status{}
	emu.Cpu.Panel.Release()
	emu.Cpu.Reset()
}

func (emu *Emulator) verbose() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Coprocessor.Verbose = emu.Verbose
}

// cycle runs one machine cycle: device ticks, coprocessor clock, CPU
// latch, then CPU propagate.
func (emu *Emulator) cycle() {
	for _, ticker := range emu.tickers {
		ticker.Tick()
	}

	emu.Cpu.Iocp = emu.Coprocessor.Clock(emu.Cpu.Signals())
	emu.Cpu.Latch()
	emu.Cpu.Propagate()
}

// Start resets the machine, runs the reset sequence, and begins execution
// at address.
func (emu *Emulator) Start(address uint32, limit int) (err error) {
	emu.Reset()

	_, err = emu.StepInstruction(limit)
	if err != nil {
		return
	}

	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.setPc(address)

	return
}

// finishReset runs the reset microcode through to the first fetch. A PC
// set before then is cleared by the reset.
func (emu *Emulator) finishReset() {
	for {
		_, st := emu.Cpu.Current()
		if st.Mode != cpu.MODE_SERVICE || st.Step >= cpu.SRV_FETCH {
			return
		}
		emu.cycle()
	}
}

// setPc moves PC, and propagates again so the buses follow it.
func (emu *Emulator) setPc(address uint32) {
	emu.Cpu.Pc = address & cpu.ADDR_MASK
	emu.Cpu.Propagate()
}

// Cycle runs a single machine cycle.
func (emu *Emulator) Cycle() {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.verbose()
	emu.cycle()
}

// Run runs a number of machine cycles.
func (emu *Emulator) Run(cycles int) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.verbose()
	for range cycles {
		emu.cycle()
	}
}

// RunUntilHalt runs until the processor halts, or for at most limit cycles.
func (emu *Emulator) RunUntilHalt(limit int) (cycles int, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.verbose()
	for !emu.Cpu.Halted() {
		if cycles >= limit {
			err = &ErrRuntime{LineNo: emu.lineNo(), Err: ErrCycleLimit}
			return
		}
		emu.cycle()
		cycles++
	}

	return
}

var stateFetch = cpu.State{Mode: cpu.MODE_SERVICE, Step: cpu.SRV_FETCH}

// StepInstruction runs until the next instruction fetch or a halt, for at
// most limit cycles.
func (emu *Emulator) StepInstruction(limit int) (cycles int, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.verbose()
	for {
		if cycles >= limit {
			err = &ErrRuntime{LineNo: emu.lineNo(), Err: ErrCycleLimit}
			return
		}
		emu.cycle()
		cycles++

		_, st := emu.Cpu.Current()
		if st == stateFetch || emu.Cpu.Halted() {
			return
		}
	}
}

// Tick runs one host tick: a read-in if requested while halted, a batch
// of cycles, and the decay of the front panel controls.
func (emu *Emulator) Tick() (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.verbose()

	if emu.Cpu.Panel.State() == cpu.PANEL_READ_IN && emu.Cpu.Halted() {
		emu.Cpu.Panel.Press(cpu.PANEL_READ_IN, 0)
		_, err = emu.readIn(emu.Cpu.Switches.Address)
		if err != nil {
			return
		}
	}

	cycles := emu.CyclesPerTick
	if cycles <= 0 {
		cycles = CYCLES_PER_TICK
	}

	for range cycles {
		emu.cycle()
	}

	emu.Cpu.Panel.Decay()

	return
}

// Snapshot returns the visible processor state.
func (emu *Emulator) Snapshot() cpu.Snapshot {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.Cpu.Snapshot()
}

// Press holds a front panel control for PANEL_TICKS host ticks.
func (emu *Emulator) Press(button cpu.PanelState) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.Cpu.Panel.Press(button, PANEL_TICKS)
}

// SetSwitches sets the front panel switch registers.
func (emu *Emulator) SetSwitches(data uint32, address uint32) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.Cpu.Switches = cpu.Switches{
		Data:    data & cpu.WORD_MASK,
		Address: address & cpu.ADDR_MASK,
	}
}

// Type queues characters at the console keyboard.
func (emu *Emulator) Type(text ...byte) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.Keyboard.Type(text...)
}

// LoadCore stores words into core starting at base.
func (emu *Emulator) LoadCore(base uint32, words []uint32) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	err = emu.loadCore(base, words)

	return
}

func (emu *Emulator) loadCore(base uint32, words []uint32) (err error) {
	if int(base)+len(words) > cpu.CORE_SIZE {
		err = ErrCoreRange
		return
	}

	for n, word := range words {
		emu.Cpu.Store(base+uint32(n), word)
	}

	return
}

// LoadProgram stores an assembled program into core and points PC at its
// start address.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	origin, words := prog.Image()
	err = emu.loadCore(origin, words)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.finishReset()
	emu.setPc(prog.Start)

	if emu.Verbose {
		log.Printf("emulator: loaded %v words at %05o, start %05o", len(words), origin, prog.Start)
	}

	return
}

// LoadTape mounts a paper tape in the reader.
func (emu *Emulator) LoadTape(data []byte) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	err = emu.TapeReader.Load(data)

	return
}

// ReadIn loads binary words from the paper tape into core at address,
// and points PC at address. The processor must be halted.
func (emu *Emulator) ReadIn(address uint32) (words int, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if !emu.Cpu.Halted() {
		err = ErrNotHalted
		return
	}

	words, err = emu.readIn(address)

	return
}

// RewindTape positions the mounted paper tape at its first frame.
func (emu *Emulator) RewindTape() {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.TapeReader.Rewind()
}

// readIn skips the tape leader, then reads binary words until the tape
// runs out or a frame without the binary channel punched is found.
func (emu *Emulator) readIn(address uint32) (words int, err error) {
	tr := &emu.TapeReader

	for tr.Remaining() > 0 && tr.Data[tr.Pointer]&0200 == 0 {
		tr.Pointer++
	}

	addr := address & cpu.ADDR_MASK
	for tr.Remaining() >= 3 {
		frames := tr.Data[tr.Pointer : tr.Pointer+3]
		if frames[0]&frames[1]&frames[2]&0200 == 0 {
			break
		}
		if int(addr) >= cpu.CORE_SIZE {
			err = ErrCoreRange
			return
		}

		tr.Arm(io.TAPE_BINARY)
		for !tr.Flag {
			tr.Tick()
		}
		tr.Flag = false

		emu.Cpu.Store(addr, tr.Buffer)
		addr++
		words++
	}

	if words == 0 {
		err = ErrReadInEmpty
		return
	}

	emu.setPc(address)

	if emu.Verbose {
		log.Printf("emulator: read-in %v words at %05o", words, address)
	}

	return
}

// LineNo returns the source line number for the current PC.
func (emu *Emulator) LineNo() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.lineNo()
}

func (emu *Emulator) lineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

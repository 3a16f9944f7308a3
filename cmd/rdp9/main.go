// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/rdp9/emulator"
	"github.com/ezrec/rdp9/io"
)

// TICK_PERIOD is the host tick interval of the interactive panel.
const TICK_PERIOD = 20 * time.Millisecond

func main() {
	var compile string
	var core_in string
	var core_out string
	var tape string
	var cycles_per_tick int
	var limit int
	var switches_data uint
	var switches_addr uint
	var interactive bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and load")
	flag.StringVar(&core_in, "i", "", "Octal core image to load")
	flag.StringVar(&core_out, "o", "", "Octal core image to save on exit")
	flag.StringVar(&tape, "t", "", "Paper tape to mount in the reader")
	flag.IntVar(&cycles_per_tick, "k", emulator.CYCLES_PER_TICK, "Cycles per host tick")
	flag.IntVar(&limit, "n", 10_000_000, "Cycle limit when not interactive")
	flag.UintVar(&switches_data, "ds", 0, "Data switches")
	flag.UintVar(&switches_addr, "as", 0, "Address switches")
	flag.BoolVar(&interactive, "p", false, "Interactive front panel on the terminal")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.CyclesPerTick = cycles_per_tick
	emu.SetSwitches(uint32(switches_data), uint32(switches_addr))

	terminal := &io.Terminal{Output: os.Stdout, Raw: interactive}
	emu.Teleprinter.Output = terminal

	if len(core_in) != 0 {
		inf, err := os.Open(core_in)
		if err != nil {
			log.Fatalf("%v: %v", core_in, err)
		}
		err = emulator.ReadCore(inf, emu.Cpu.Core[:])
		err = errors.Join(err, inf.Close())
		if err != nil {
			log.Fatalf("%v: %v", core_in, err)
		}
	}

	if len(compile) != 0 {
		source, err := os.ReadFile(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		prog, err := emu.Assemble(string(source))
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		err = emu.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(tape) != 0 {
		data, err := os.ReadFile(tape)
		if err != nil {
			log.Fatalf("%v: %v", tape, err)
		}
		err = emu.LoadTape(data)
		if err != nil {
			log.Fatalf("%v: %v", tape, err)
		}
	}

	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		runPanel(emu)
	} else {
		runBatch(emu, limit)
	}

	if len(core_out) != 0 {
		ouf, err := os.Create(core_out)
		if err != nil {
			log.Fatalf("%v: %v", core_out, err)
		}
		err = emulator.WriteCore(ouf, emu.Cpu.Core[:])
		err = errors.Join(err, ouf.Close())
		if err != nil {
			log.Fatalf("%v: %v", core_out, err)
		}
	}
}

// runBatch runs the loaded program from its start address until it halts.
func runBatch(emu *emulator.Emulator, limit int) {
	err := emu.Start(emu.Program.Start, limit)
	if err != nil {
		log.Fatal(err)
	}

	_, err = emu.RunUntilHalt(limit)
	if err != nil {
		log.Fatal(err)
	}

	if emu.Verbose {
		log.Printf("\n%v", emu.Snapshot())
	}
}

// runPanel runs the emulator in real time with the terminal as front panel
// and console, until the operator quits.
func runPanel(emu *emulator.Emulator) {
	host := NewPanelHost(emu)
	err := host.Start()
	if err != nil {
		log.Fatalf("panel: %v", err)
	}
	defer host.Stop()

	ticker := time.NewTicker(TICK_PERIOD)
	defer ticker.Stop()

	for {
		select {
		case <-host.Quit:
			return
		case <-ticker.C:
			err := emu.Tick()
			if err != nil {
				log.Printf("panel: %v\r", err)
			}
		}
	}
}

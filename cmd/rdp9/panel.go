package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/rdp9/cpu"
	"github.com/ezrec/rdp9/emulator"
)

// PANEL_ESCAPE prefixes a front panel command key. Control-A.
const PANEL_ESCAPE = 0x01

// panelKeys maps the key after PANEL_ESCAPE to a front panel control.
// 'q' quits, 'p' prints the registers and 'w' rewinds the tape.
var panelKeys = map[byte]cpu.PanelState{
	's': cpu.PANEL_STOP,
	'c': cpu.PANEL_CONTINUE,
	'g': cpu.PANEL_START,
	'e': cpu.PANEL_EXAMINE,
	'E': cpu.PANEL_EXAMINE_NEXT,
	'd': cpu.PANEL_DEPOSIT,
	'D': cpu.PANEL_DEPOSIT_NEXT,
	'r': cpu.PANEL_READ_IN,
	'x': cpu.PANEL_EXECUTE,
}

// PanelHost reads raw stdin, routing panel commands to the front panel
// and everything else to the console keyboard.
type PanelHost struct {
	emu *emulator.Emulator

	Quit chan struct{} // Closed when the operator quits.

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	quit         sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
	escape       bool
}

// NewPanelHost creates a panel host for the emulator.
func NewPanelHost(emu *emulator.Emulator) *PanelHost {
	return &PanelHost{
		emu:    emu,
		Quit:   make(chan struct{}),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin in raw non-blocking mode and begins reading it.
func (h *PanelHost) Start() (err error) {
	h.fd = int(os.Stdin.Fd())

	h.oldTermState, err = term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return
	}

	err = syscall.SetNonblock(h.fd, true)
	if err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				h.key(buf[0])
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()

	return
}

// key routes one host key.
func (h *PanelHost) key(b byte) {
	if !h.escape {
		if b == PANEL_ESCAPE {
			h.escape = true
			return
		}
		// Modern terminals send DEL for Backspace.
		if b == 0x7f {
			b = '\b'
		}
		h.emu.Type(b)
		return
	}

	h.escape = false

	switch b {
	case PANEL_ESCAPE:
		h.emu.Type(b)
	case 'q':
		h.quit.Do(func() { close(h.Quit) })
	case 'w':
		h.emu.RewindTape()
	case 'p':
		snap := h.emu.Snapshot()
		for _, line := range strings.Split(strings.TrimRight(snap.String(), "\n"), "\n") {
			fmt.Fprintf(os.Stderr, "%v\r\n", line)
		}
	default:
		button, ok := panelKeys[b]
		if ok {
			h.emu.Press(button)
		}
	}
}

// Stop ends the reader and restores stdin.
func (h *PanelHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

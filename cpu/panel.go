// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// PanelState is the 4-bit front panel state seen by the SERVICE microcode.
type PanelState int

//go:generate go tool stringer -linecomment -type=PanelState
const (
	PANEL_NEUTRAL      = PanelState(0) // neutral
	PANEL_STOP         = PanelState(1) // stop
	PANEL_CONTINUE     = PanelState(2) // continue
	PANEL_START        = PanelState(3) // start
	PANEL_EXAMINE      = PanelState(4) // examine
	PANEL_EXAMINE_NEXT = PanelState(5) // examine-next
	PANEL_DEPOSIT      = PanelState(6) // deposit
	PANEL_DEPOSIT_NEXT = PanelState(7) // deposit-next
	PANEL_READ_IN      = PanelState(8) // read-in
	PANEL_EXECUTE      = PanelState(9) // execute
)

// Panel holds the momentary front panel controls. Each pressed control
// stays active for a number of host ticks.
type Panel struct {
	pulse [PANEL_EXECUTE + 1]int
}

// Press activates a control for the given number of host ticks.
func (panel *Panel) Press(button PanelState, ticks int) {
	if button <= PANEL_NEUTRAL || button > PANEL_EXECUTE {
		return
	}
	panel.pulse[button] = ticks
}

// Release deactivates all controls.
func (panel *Panel) Release() {
	clear(panel.pulse[:])
}

// Decay counts every active control down by one host tick.
func (panel *Panel) Decay() {
	for n := range panel.pulse {
		if panel.pulse[n] > 0 {
			panel.pulse[n]--
		}
	}
}

// State returns the active control with the highest priority, the lowest code.
func (panel *Panel) State() (state PanelState) {
	for n := PANEL_STOP; n <= PANEL_EXECUTE; n++ {
		if panel.pulse[n] > 0 {
			state = n
			return
		}
	}

	return
}

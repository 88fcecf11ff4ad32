package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loyerbxl/rentwizard/internal/holdrepeat"
)

// stepRepeatMsg is one tick of the hold-to-repeat accelerator.
type stepRepeatMsg struct{}

// stepRepeater bridges the accelerator's timer goroutine into the
// Bubble Tea message loop. The accelerator fires into a buffered
// channel; a persistent listen command turns each tick into a message
// processed on the UI goroutine, so the callback never touches model
// state.
type stepRepeater struct {
	acc *holdrepeat.Accelerator
	ch  chan struct{}

	// delta is the signed unit applied per tick; only the UI goroutine
	// reads it, and only between a release and the next press is it
	// written.
	delta float64
}

func newStepRepeater() *stepRepeater {
	r := &stepRepeater{ch: make(chan struct{}, 8)}
	r.acc = holdrepeat.New(holdrepeat.Config{InvokeOnStart: true}, func() {
		// Drop ticks the UI has not consumed yet; a saturated channel
		// means the terminal is already behind.
		select {
		case r.ch <- struct{}{}:
		default:
		}
	})
	return r
}

// press begins repeating with the given signed delta.
func (r *stepRepeater) press(delta float64) {
	if r.acc.Active() {
		return
	}
	r.delta = delta
	r.acc.Start()
}

// release stops repeating. Safe to call when not pressed.
func (r *stepRepeater) release() {
	r.acc.Stop()
}

// listen waits for the next tick. The caller re-arms it after every
// stepRepeatMsg; exactly one listener runs at a time.
func (r *stepRepeater) listen() tea.Cmd {
	return func() tea.Msg {
		return stepRepeatMsg(<-r.ch)
	}
}

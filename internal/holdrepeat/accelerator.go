package holdrepeat

import (
	"sync"
	"time"
)

// Default timing: repeat at 150ms, accelerate to 100ms after half a
// second of holding, then to 50ms after a second and a half.
const (
	DefaultPhase1Interval = 150 * time.Millisecond
	DefaultPhase2Interval = 100 * time.Millisecond
	DefaultPhase3Interval = 50 * time.Millisecond
	DefaultPhase2After    = 500 * time.Millisecond
	DefaultPhase3After    = 1500 * time.Millisecond
)

// Config controls the repeat timing. Zero durations fall back to the
// defaults; tests shrink them to keep runs fast.
type Config struct {
	Phase1Interval time.Duration
	Phase2Interval time.Duration
	Phase3Interval time.Duration

	// Phase2After and Phase3After are hold-time thresholds measured
	// from Start.
	Phase2After time.Duration
	Phase3After time.Duration

	// InvokeOnStart fires the callback once immediately on Start, so a
	// press registers without waiting a full interval.
	InvokeOnStart bool
}

func (c Config) withDefaults() Config {
	if c.Phase1Interval <= 0 {
		c.Phase1Interval = DefaultPhase1Interval
	}
	if c.Phase2Interval <= 0 {
		c.Phase2Interval = DefaultPhase2Interval
	}
	if c.Phase3Interval <= 0 {
		c.Phase3Interval = DefaultPhase3Interval
	}
	if c.Phase2After <= 0 {
		c.Phase2After = DefaultPhase2After
	}
	if c.Phase3After <= 0 {
		c.Phase3After = DefaultPhase3After
	}
	return c
}

// Accelerator is a press-and-hold repeat timer with acceleration. While
// held it invokes its callback at an interval that shrinks the longer
// the hold lasts, in three phases.
//
// The callback is kept in a mutable cell and read at every fire, never
// captured at Start time: a long-held accelerator always invokes the
// latest function installed with SetFunc, not a stale one.
type Accelerator struct {
	mu      sync.Mutex
	cfg     Config
	fn      func()
	active  bool
	phase   int
	started time.Time
	stopCh  chan struct{}
}

// New creates an idle accelerator with the given callback. fn may be
// nil and installed later with SetFunc.
func New(cfg Config, fn func()) *Accelerator {
	return &Accelerator{cfg: cfg.withDefaults(), fn: fn, phase: 1}
}

// SetFunc replaces the repeat callback. Safe to call at any time,
// including while holding; the next fire uses the new function.
func (a *Accelerator) SetFunc(fn func()) {
	a.mu.Lock()
	a.fn = fn
	a.mu.Unlock()
}

// Active reports whether a hold is in progress.
func (a *Accelerator) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Phase returns the current acceleration phase (1..3). Idle
// accelerators report phase 1.
func (a *Accelerator) Phase() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Start begins a hold. Calling Start while already holding is a no-op,
// so key auto-repeat cannot stack timers.
func (a *Accelerator) Start() {
	a.mu.Lock()
	if a.active {
		a.mu.Unlock()
		return
	}
	a.active = true
	a.phase = 1
	a.started = time.Now()
	a.stopCh = make(chan struct{})
	stopCh := a.stopCh
	invoke := a.cfg.InvokeOnStart
	interval := a.cfg.Phase1Interval
	a.mu.Unlock()

	if invoke {
		a.fire()
	}

	go a.run(stopCh, interval)
}

// Stop ends the hold and clears the pending timer. Idempotent; safe to
// call with no hold in progress and safe to call again after teardown.
func (a *Accelerator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.active = false
	a.phase = 1
	close(a.stopCh)
	a.stopCh = nil
}

// run owns the ticker for one hold. The ticker is reset (torn down and
// re-armed) whenever the phase changes; recomputing the phase from the
// hold's start time instead of resetting a timer per tick keeps the
// acceleration schedule drift-free.
func (a *Accelerator) run(stopCh chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.fire() {
				return
			}

			a.mu.Lock()
			if !a.active {
				a.mu.Unlock()
				return
			}
			elapsed := time.Since(a.started)
			phase, phaseInterval := a.phaseFor(elapsed)
			if phase != a.phase {
				a.phase = phase
				ticker.Reset(phaseInterval)
			}
			a.mu.Unlock()
		}
	}
}

// fire invokes the current callback, reading it through the cell at
// fire time. It reports false when the hold has ended, so a tick that
// raced Stop does not invoke anything.
func (a *Accelerator) fire() bool {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return false
	}
	fn := a.fn
	a.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// phaseFor maps a hold duration to its phase and repeat interval.
func (a *Accelerator) phaseFor(elapsed time.Duration) (int, time.Duration) {
	switch {
	case elapsed >= a.cfg.Phase3After:
		return 3, a.cfg.Phase3Interval
	case elapsed >= a.cfg.Phase2After:
		return 2, a.cfg.Phase2Interval
	default:
		return 1, a.cfg.Phase1Interval
	}
}

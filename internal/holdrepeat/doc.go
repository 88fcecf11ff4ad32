// Package holdrepeat provides a press-and-hold repeat timer with
// acceleration, the timing machine behind the numeric stepper controls.
//
// Holding the control fires a callback at a shrinking interval: 150ms
// at first, 100ms after half a second, 50ms after a second and a half.
// Start is idempotent while holding, Stop is idempotent always, and the
// callback is re-read on every fire so a hold that outlives a state
// change never invokes a stale function.
package holdrepeat

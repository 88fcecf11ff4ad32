// Package wizard implements the form state machine at the core of the
// rent-reference questionnaire.
//
// All of the wizard's data lives in one State value: contact details,
// property attributes, lease information, household context, reported
// issues and the calculation results, together with the current step,
// a session id and a last-updated timestamp.
//
// State is never mutated in place. Every change goes through Apply,
// a pure transition function taking the previous State and an Action
// and returning the next State:
//
//	next := wizard.Apply(prev, wizard.UpdatePropertyInfo{Patch: patch}, time.Now())
//
// Section updates are shallow merges: patch structs use pointer fields
// so an absent field never clobbers a sibling. Unknown actions are
// ignored rather than rejected, and ParseAction adapts the legacy flat
// action vocabulary onto the same set of canonical actions, so there is
// exactly one reducer regardless of which surface dispatched the change.
package wizard

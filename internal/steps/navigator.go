package steps

import (
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// Location abstracts the address bar for the navigator. The HTTP layer
// implements it with redirects; the terminal wizard keeps a virtual
// path so both surfaces share one navigation rule.
type Location interface {
	// Replace changes the current location without adding a history
	// entry. Used for the invalid-step redirect so the bad URL never
	// appears in history.
	Replace(path string)
	// Push changes the current location and adds a history entry.
	Push(path string)
}

// Navigator keeps the URL and the form state's current step in
// agreement. The URL is the source of truth for step position: the
// in-memory state is synchronized to it, never the reverse.
type Navigator struct {
	locale string
	loc    Location
}

// NewNavigator creates a navigator for one locale over the given
// location.
func NewNavigator(locale string, loc Location) *Navigator {
	return &Navigator{locale: locale, loc: loc}
}

// Navigate resolves an ordinal to its step key and pushes the matching
// step path. A missing mapping is a no-op; callers are expected to have
// validated the ordinal first.
func (n *Navigator) Navigate(ordinal int) {
	key, ok := ToKey(ordinal)
	if !ok {
		return
	}
	n.loc.Push(PathFor(n.locale, key))
}

// Sync reconciles the step key found in the URL with the state's
// current step.
//
// An invalid key (unknown, or empty) triggers a replace-redirect to the
// first step and no action. A valid key that differs from currentStep
// yields a SetCurrentStep action carrying the URL-derived ordinal. A
// key already in agreement yields nothing: synchronization is
// idempotent.
func (n *Navigator) Sync(urlKey string, currentStep int) (wizard.Action, bool) {
	ordinal, ok := ToOrdinal(urlKey)
	if !ok {
		n.loc.Replace(PathFor(n.locale, First()))
		return nil, false
	}
	if ordinal == currentStep {
		return nil, false
	}
	return wizard.SetCurrentStep{Step: ordinal}, true
}

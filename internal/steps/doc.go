// Package steps maintains the fixed bijection between the wizard's
// symbolic step keys (the URL segments) and their 1-based ordinals (the
// form state's currentStep), plus the navigation rule that keeps the
// two in agreement.
//
// The step set is closed: property-type, property-details, features,
// energy, address, results. Anything else in a URL is invalid and gets
// replace-redirected to the first step, so back/forward navigation can
// never desynchronize the wizard or leave a broken entry in history.
package steps

package steps

import "fmt"

// The step keys, in wizard order. These are the URL segments of the step
// routes; the set is closed and hand-authored on purpose.
const (
	KeyPropertyType    = "property-type"
	KeyPropertyDetails = "property-details"
	KeyFeatures        = "features"
	KeyEnergy          = "energy"
	KeyAddress         = "address"
	KeyResults         = "results"
)

// ordered defines the bijection between keys and 1-based ordinals.
var ordered = []string{
	KeyPropertyType,
	KeyPropertyDetails,
	KeyFeatures,
	KeyEnergy,
	KeyAddress,
	KeyResults,
}

var ordinals = func() map[string]int {
	m := make(map[string]int, len(ordered))
	for i, key := range ordered {
		m[key] = i + 1
	}
	return m
}()

// ToOrdinal maps a step key to its 1-based ordinal. The second return
// value is false for anything outside the closed set, including "".
func ToOrdinal(key string) (int, bool) {
	n, ok := ordinals[key]
	return n, ok
}

// ToKey maps a 1-based ordinal back to its step key.
func ToKey(ordinal int) (string, bool) {
	if ordinal < 1 || ordinal > len(ordered) {
		return "", false
	}
	return ordered[ordinal-1], true
}

// IsValid reports whether key belongs to the closed step set.
func IsValid(key string) bool {
	_, ok := ordinals[key]
	return ok
}

// First returns the key of the first wizard step, the landing point for
// any invalid or missing step in the URL.
func First() string {
	return ordered[0]
}

// Count returns the number of wizard steps.
func Count() int {
	return len(ordered)
}

// Keys returns the step keys in wizard order.
func Keys() []string {
	out := make([]string, len(ordered))
	copy(out, ordered)
	return out
}

// PathFor builds the step route path for a locale and step key:
//
//	/{locale}/calculateur/bruxelles/step/{key}
func PathFor(locale, key string) string {
	return fmt.Sprintf("/%s/calculateur/bruxelles/step/%s", locale, key)
}

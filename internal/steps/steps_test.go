package steps

import (
	"testing"

	"github.com/loyerbxl/rentwizard/internal/wizard"
)

func TestBijectionRoundTrip(t *testing.T) {
	for ordinal := 1; ordinal <= Count(); ordinal++ {
		key, ok := ToKey(ordinal)
		if !ok {
			t.Fatalf("ToKey(%d) missing", ordinal)
		}
		back, ok := ToOrdinal(key)
		if !ok {
			t.Fatalf("ToOrdinal(%q) missing", key)
		}
		if back != ordinal {
			t.Errorf("round trip %d -> %q -> %d", ordinal, key, back)
		}
	}
}

func TestToKeyOutOfRange(t *testing.T) {
	for _, ordinal := range []int{0, -1, 7, 100} {
		if _, ok := ToKey(ordinal); ok {
			t.Errorf("ToKey(%d) should be missing", ordinal)
		}
	}
}

func TestInvalidKeys(t *testing.T) {
	for _, key := range []string{"", "undefined", "step-1", "Results", "property_type"} {
		if IsValid(key) {
			t.Errorf("IsValid(%q) = true, want false", key)
		}
		if _, ok := ToOrdinal(key); ok {
			t.Errorf("ToOrdinal(%q) should be missing", key)
		}
	}
}

func TestFirst(t *testing.T) {
	if First() != KeyPropertyType {
		t.Errorf("First() = %q, want %q", First(), KeyPropertyType)
	}
}

func TestPathFor(t *testing.T) {
	got := PathFor("fr", KeyEnergy)
	want := "/fr/calculateur/bruxelles/step/energy"
	if got != want {
		t.Errorf("PathFor = %q, want %q", got, want)
	}
}

// fakeLocation records navigation calls for assertions.
type fakeLocation struct {
	replaced []string
	pushed   []string
}

func (l *fakeLocation) Replace(path string) { l.replaced = append(l.replaced, path) }
func (l *fakeLocation) Push(path string)    { l.pushed = append(l.pushed, path) }

func TestNavigateValidOrdinal(t *testing.T) {
	loc := &fakeLocation{}
	nav := NewNavigator("nl", loc)

	nav.Navigate(6)

	if len(loc.pushed) != 1 || loc.pushed[0] != "/nl/calculateur/bruxelles/step/results" {
		t.Errorf("pushed = %v", loc.pushed)
	}
	if len(loc.replaced) != 0 {
		t.Errorf("navigate should push, not replace: %v", loc.replaced)
	}
}

func TestNavigateMissingMappingIsNoOp(t *testing.T) {
	loc := &fakeLocation{}
	nav := NewNavigator("fr", loc)

	nav.Navigate(0)
	nav.Navigate(99)

	if len(loc.pushed) != 0 || len(loc.replaced) != 0 {
		t.Errorf("missing mapping should not navigate: pushed=%v replaced=%v", loc.pushed, loc.replaced)
	}
}

func TestSyncInvalidKeyRedirectsToFirstStep(t *testing.T) {
	// Empty and unrecognized keys are treated identically
	for _, key := range []string{"", "bogus"} {
		loc := &fakeLocation{}
		nav := NewNavigator("fr", loc)

		act, ok := nav.Sync(key, 3)

		if ok || act != nil {
			t.Errorf("Sync(%q) should not yield an action", key)
		}
		if len(loc.replaced) != 1 || loc.replaced[0] != "/fr/calculateur/bruxelles/step/property-type" {
			t.Errorf("Sync(%q) replaced = %v, want redirect to first step", key, loc.replaced)
		}
		if len(loc.pushed) != 0 {
			t.Errorf("invalid-step redirect must replace, not push: %v", loc.pushed)
		}
	}
}

func TestSyncURLWins(t *testing.T) {
	loc := &fakeLocation{}
	nav := NewNavigator("fr", loc)

	act, ok := nav.Sync(KeyAddress, 2)
	if !ok {
		t.Fatal("differing step should yield an action")
	}
	set, isSet := act.(wizard.SetCurrentStep)
	if !isSet || set.Step != 5 {
		t.Errorf("action = %#v, want SetCurrentStep{5}", act)
	}
	if len(loc.replaced)+len(loc.pushed) != 0 {
		t.Error("a valid key must not navigate")
	}
}

func TestSyncIdempotentWhenEqual(t *testing.T) {
	loc := &fakeLocation{}
	nav := NewNavigator("fr", loc)

	act, ok := nav.Sync(KeyFeatures, 3)
	if ok || act != nil {
		t.Errorf("in-agreement sync should be a no-op, got %#v", act)
	}
	if len(loc.replaced)+len(loc.pushed) != 0 {
		t.Error("in-agreement sync should not navigate")
	}
}

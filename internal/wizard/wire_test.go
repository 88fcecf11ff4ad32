package wizard

import (
	"reflect"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestParseActionCanonicalNames(t *testing.T) {
	act, ok := ParseAction("update-property-info", []byte(`{"size": 85, "bedrooms": 2}`))
	if !ok {
		t.Fatal("canonical update-property-info not recognized")
	}

	upd, isUpdate := act.(UpdatePropertyInfo)
	if !isUpdate {
		t.Fatalf("action type = %T, want UpdatePropertyInfo", act)
	}
	if upd.Patch.Size == nil || *upd.Patch.Size != 85 {
		t.Error("size not decoded")
	}
	if upd.Patch.Bedrooms == nil || *upd.Patch.Bedrooms != 2 {
		t.Error("bedrooms not decoded")
	}
	if upd.Patch.PostalCode != nil {
		t.Error("absent fields must decode to nil")
	}
}

func TestParseActionLegacyNames(t *testing.T) {
	// The legacy flat vocabulary must land on the same reducer actions
	cases := []struct {
		legacy  string
		payload string
		want    string
	}{
		{"UPDATE_USER_PROFILE", `{"email":"a@b.be"}`, "update-user-profile"},
		{"UPDATE_PROPERTY_INFO", `{"size": 60}`, "update-property-info"},
		{"UPDATE_RENTAL_INFO", `{"actualRent":"900"}`, "update-rental-info"},
		{"UPDATE_HOUSEHOLD_INFO", `{"monthlyIncome":"2000"}`, "update-household-info"},
		{"UPDATE_PROPERTY_ISSUES", `{"comments":"damp walls"}`, "update-property-issues"},
		{"UPDATE_CALCULATION_RESULTS", `{"isLoading":true}`, "update-calculation-results"},
		{"SET_STEP", `3`, "set-current-step"},
		{"SET_PAGE", `"results"`, "set-current-page"},
		{"RESET_FORM", ``, "reset"},
		{"TOUCH", ``, "touch"},
	}

	for _, tc := range cases {
		act, ok := ParseAction(tc.legacy, []byte(tc.payload))
		if !ok {
			t.Errorf("legacy action %q not recognized", tc.legacy)
			continue
		}
		if act.Name() != tc.want {
			t.Errorf("legacy %q mapped to %q, want %q", tc.legacy, act.Name(), tc.want)
		}
	}
}

func TestParseActionStepPayloadShapes(t *testing.T) {
	// Bare number (legacy) and wrapped object (canonical) both work
	act, ok := ParseAction("set-current-step", []byte(`{"step": 5}`))
	if !ok || act.(SetCurrentStep).Step != 5 {
		t.Error("wrapped step payload not decoded")
	}

	act, ok = ParseAction("SET_STEP", []byte(`5`))
	if !ok || act.(SetCurrentStep).Step != 5 {
		t.Error("bare step payload not decoded")
	}
}

func TestParseActionUnknownType(t *testing.T) {
	if _, ok := ParseAction("UPDATE_USR_PROFILE", []byte(`{}`)); ok {
		t.Error("typo'd action name should not parse")
	}
	if _, ok := ParseAction("", nil); ok {
		t.Error("empty action name should not parse")
	}
}

func TestParseActionCorruptPayload(t *testing.T) {
	if _, ok := ParseAction("update-user-profile", []byte(`{"email": 42`)); ok {
		t.Error("corrupt payload should not parse")
	}
}

func TestDecodeActionEnvelope(t *testing.T) {
	act, ok := DecodeAction([]byte(`{"type":"set-current-page","payload":{"page":"results"}}`))
	if !ok {
		t.Fatal("envelope not decoded")
	}
	if act.(SetCurrentPage).Page != PageResults {
		t.Errorf("page = %q, want results", act.(SetCurrentPage).Page)
	}

	if _, ok := DecodeAction([]byte(`not json`)); ok {
		t.Error("invalid envelope should not decode")
	}
}

func TestParsedActionDrivesReducer(t *testing.T) {
	s := NewState(t0)

	act, ok := ParseAction("UPDATE_PROPERTY_INFO", []byte(`{"propertyType":"apartment","size":120}`))
	if !ok {
		t.Fatal("legacy action not recognized")
	}
	s = Apply(s, act, t0.Add(time.Second))

	if s.PropertyInfo.PropertyType != PropertyTypeApartment {
		t.Errorf("PropertyType = %q, want apartment", s.PropertyInfo.PropertyType)
	}
	if s.PropertyInfo.Size != 120 {
		t.Errorf("Size = %v, want 120", s.PropertyInfo.Size)
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewState(t0)
	s.PropertyInfo.CentralHeating = Yes
	s.PropertyInfo.SecondBathroom = No
	s.PropertyIssues.HealthIssues = []string{"humidity"}

	act, ok := ParseAction("restore-state", mustJSON(t, s))
	if !ok {
		t.Fatal("restore-state with serialized snapshot should parse")
	}
	got := act.(RestoreState).State

	if !reflect.DeepEqual(got, s) {
		t.Errorf("snapshot round trip mismatch\n got: %+v\nwant: %+v", got, s)
	}
	if got.PropertyInfo.ThermalRegulation != Unset {
		t.Error("unanswered tri-state should round-trip as unset")
	}
}

package wizard

import (
	json "github.com/goccy/go-json"
)

// Envelope is the wire shape of a dispatched action: a type name plus a
// type-specific JSON payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// legacyNames maps the historical flat action vocabulary onto the
// canonical names. The old surface and the nested one both end up in the
// same reducer; there is exactly one transition function.
var legacyNames = map[string]string{
	"RESTORE_STATE":              "restore-state",
	"UPDATE_USER_PROFILE":        "update-user-profile",
	"UPDATE_PROPERTY_INFO":       "update-property-info",
	"UPDATE_RENTAL_INFO":         "update-rental-info",
	"UPDATE_HOUSEHOLD_INFO":      "update-household-info",
	"UPDATE_PROPERTY_ISSUES":     "update-property-issues",
	"UPDATE_CALCULATION_RESULTS": "update-calculation-results",
	"SET_STEP":                   "set-current-step",
	"SET_PAGE":                   "set-current-page",
	"RESET_FORM":                 "reset",
	"TOUCH":                      "touch",
}

// ParseAction translates a wire-level action (canonical kebab-case name
// or legacy flat name) into a concrete Action. The second return value
// is false for unknown names or undecodable payloads; callers treat that
// as a no-op, mirroring the reducer's ignore-unknown policy.
func ParseAction(name string, payload json.RawMessage) (Action, bool) {
	if canonical, ok := legacyNames[name]; ok {
		name = canonical
	}

	switch name {
	case "restore-state":
		var s State
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, false
		}
		return RestoreState{State: s}, true

	case "update-user-profile":
		var p UserProfilePatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, false
		}
		return UpdateUserProfile{Patch: p}, true

	case "update-property-info":
		var p PropertyInfoPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, false
		}
		return UpdatePropertyInfo{Patch: p}, true

	case "update-rental-info":
		var p RentalInfoPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, false
		}
		return UpdateRentalInfo{Patch: p}, true

	case "update-household-info":
		var p HouseholdInfoPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, false
		}
		return UpdateHouseholdInfo{Patch: p}, true

	case "update-property-issues":
		var p PropertyIssuesPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, false
		}
		return UpdatePropertyIssues{Patch: p}, true

	case "update-calculation-results":
		var p CalculationResultsPatch
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, false
		}
		return UpdateCalculationResults{Patch: p}, true

	case "set-current-step":
		step, ok := decodeStep(payload)
		if !ok {
			return nil, false
		}
		return SetCurrentStep{Step: step}, true

	case "set-current-page":
		page, ok := decodePage(payload)
		if !ok {
			return nil, false
		}
		return SetCurrentPage{Page: page}, true

	case "reset":
		return Reset{}, true

	case "touch":
		return Touch{}, true

	case "bootstrap-size":
		return BootstrapSize{}, true

	default:
		return nil, false
	}
}

// DecodeAction parses a full wire envelope.
func DecodeAction(data []byte) (Action, bool) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	return ParseAction(env.Type, env.Payload)
}

// decodeStep accepts both {"step": 3} and a bare 3. The legacy surface
// dispatched bare numbers.
func decodeStep(payload json.RawMessage) (int, bool) {
	var obj struct {
		Step *int `json:"step"`
	}
	if err := json.Unmarshal(payload, &obj); err == nil && obj.Step != nil {
		return *obj.Step, true
	}
	var bare int
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, true
	}
	return 0, false
}

// decodePage accepts both {"page": "results"} and a bare "results".
func decodePage(payload json.RawMessage) (Page, bool) {
	var obj struct {
		Page *Page `json:"page"`
	}
	if err := json.Unmarshal(payload, &obj); err == nil && obj.Page != nil {
		return *obj.Page, true
	}
	var bare Page
	if err := json.Unmarshal(payload, &bare); err == nil && bare != "" {
		return bare, true
	}
	return "", false
}

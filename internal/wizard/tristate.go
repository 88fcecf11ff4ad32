package wizard

import "bytes"

// TriState is a yes/no answer that may not have been given yet.
// Unset is distinct from No: an unanswered question must not be treated
// as a negative answer except where the calculation rules say so.
type TriState int

const (
	// Unset means the question has not been answered.
	Unset TriState = iota
	// Yes is an explicit positive answer.
	Yes
	// No is an explicit negative answer.
	No
)

// String returns a human-readable name for the value
func (t TriState) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unset"
	}
}

// TriFromBool converts an explicit boolean answer to a TriState
func TriFromBool(b bool) TriState {
	if b {
		return Yes
	}
	return No
}

var (
	jsonNull  = []byte("null")
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

// MarshalJSON encodes Unset as null so the persisted snapshot keeps the
// three-valued distinction.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return jsonTrue, nil
	case No:
		return jsonFalse, nil
	default:
		return jsonNull, nil
	}
}

// UnmarshalJSON accepts null, true or false. Anything else leaves the
// value Unset rather than failing the whole snapshot.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, jsonTrue):
		*t = Yes
	case bytes.Equal(data, jsonFalse):
		*t = No
	default:
		*t = Unset
	}
	return nil
}

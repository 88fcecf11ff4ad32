package wizard

import "time"

// Apply is the transition function of the form state machine. It returns
// a new State and never mutates its input. Sections not touched by the
// action keep their previous values (slices keep their backing arrays).
//
// Unknown or nil actions return the input state unchanged. This is a
// deliberate ignore-unknown policy: the state machine is driven by more
// than one calling convention (see ParseAction) and must tolerate action
// vocabularies it does not recognize.
//
// Every mutating transition bumps LastUpdated to now, but LastUpdated
// never goes backwards even if the supplied clock does.
func Apply(s State, a Action, now time.Time) State {
	switch a := a.(type) {
	case RestoreState:
		// The snapshot replaces everything, session id included. Its own
		// lastUpdated is kept: the restore is byte-for-byte.
		return a.State

	case UpdateUserProfile:
		next := s
		a.Patch.apply(&next.UserProfile)
		return touch(next, now)

	case UpdatePropertyInfo:
		next := s
		a.Patch.apply(&next.PropertyInfo)
		return touch(next, now)

	case UpdateRentalInfo:
		next := s
		a.Patch.apply(&next.RentalInfo)
		return touch(next, now)

	case UpdateHouseholdInfo:
		next := s
		a.Patch.apply(&next.HouseholdInfo)
		return touch(next, now)

	case UpdatePropertyIssues:
		next := s
		a.Patch.apply(&next.PropertyIssues)
		return touch(next, now)

	case UpdateCalculationResults:
		next := s
		a.Patch.apply(&next.CalculationResults)
		return touch(next, now)

	case SetCurrentStep:
		if a.Step < 1 {
			return s
		}
		next := s
		next.CurrentStep = a.Step
		return touch(next, now)

	case SetCurrentPage:
		next := s
		next.CurrentPage = a.Page
		return touch(next, now)

	case Reset:
		return NewState(now)

	case Touch:
		return touch(s, now)

	case BootstrapSize:
		if s.PropertyInfo.Size != 0 {
			return s
		}
		next := s
		next.PropertyInfo.Size = 1
		return touch(next, now)

	default:
		return s
	}
}

// touch refreshes LastUpdated, keeping it monotonically non-decreasing.
func touch(s State, now time.Time) State {
	if ms := now.UnixMilli(); ms > s.LastUpdated {
		s.LastUpdated = ms
	}
	return s
}

package model

const (
	EntityName = "appointment"
)

// State is the position of the booking workflow. Transitions only move
// through the controller so the flow can never submit without a staff
// member, date and slot all chosen.
type State int

const (
	StateIdle State = iota
	StateStaffSelected
	StateDateSelected
	StateSlotSelected
	StateSubmitting
	StateConfirmed
	StateConflictRecovery
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStaffSelected:
		return "staff_selected"
	case StateDateSelected:
		return "date_selected"
	case StateSlotSelected:
		return "slot_selected"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	case StateConflictRecovery:
		return "conflict_recovery"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

package shift

type State string

const (
	// StateOpen means no active offers, awaiting invitation.
	StateOpen State = "open"
	// StatePending means at least one outstanding offer.
	StatePending State = "pending"
	// StateConfirmed means one offer was accepted and payment authorized.
	StateConfirmed State = "confirmed"
	// StateCompleted means the shift elapsed and payment was captured.
	StateCompleted State = "completed"
	// StateCancelled means the venue withdrew the shift. Retained for audit.
	StateCancelled State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateOpen, StatePending, StateConfirmed, StateCompleted, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Inviteable reports whether new offers may be extended in this state.
func (s State) Inviteable() bool {
	return s == StateOpen || s == StatePending
}

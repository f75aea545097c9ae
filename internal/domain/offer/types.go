package offer

type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeAccepted Outcome = "accepted"
	OutcomeDeclined Outcome = "declined"
	OutcomeExpired  Outcome = "expired"
	// OutcomeSuperseded marks a pending offer invalidated because a sibling
	// offer won the shift or the venue cancelled.
	OutcomeSuperseded Outcome = "superseded"
)

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomeAccepted, OutcomeDeclined, OutcomeExpired, OutcomeSuperseded:
		return true
	default:
		return false
	}
}

func (o Outcome) IsResolved() bool {
	return o != OutcomePending
}

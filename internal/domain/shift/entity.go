package shift

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotInviteable    = errors.New("shift is not inviteable")
	ErrNotPending       = errors.New("shift is not pending")
	ErrNotConfirmed     = errors.New("shift is not confirmed")
	ErrAlreadyConfirmed = errors.New("shift is already confirmed")
	ErrCompleted        = errors.New("shift is already completed")
	ErrNotEnded         = errors.New("shift has not ended yet")
	ErrStillAssigned    = errors.New("shift still has an assigned professional")
)

// Shift is the aggregate mutated only through the assignment coordinator.
// assignedProfessionalID is non-nil iff the state is confirmed or completed.
type Shift struct {
	id                     uuid.UUID
	venueID                uuid.UUID
	title                  string
	description            string
	window                 TimeWindow
	hourlyRate             HourlyRate
	location               Location
	state                  State
	assignedProfessionalID *uuid.UUID
	paymentAuthRef         *string
	version                int64
	createdAt              time.Time
	updatedAt              time.Time
}

func NewShift(
	venueID uuid.UUID,
	title, description string,
	window TimeWindow,
	hourlyRate HourlyRate,
	location Location,
	now time.Time,
) (*Shift, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := window.ValidateNotPastAt(now); err != nil {
		return nil, err
	}

	return &Shift{
		id:          uuid.New(),
		venueID:     venueID,
		title:       title,
		description: description,
		window:      window,
		hourlyRate:  hourlyRate,
		location:    location,
		state:       StateOpen,
	}, nil
}

func Reconstruct(
	id, venueID uuid.UUID,
	title, description string,
	window TimeWindow,
	hourlyRate HourlyRate,
	location Location,
	state State,
	assignedProfessionalID *uuid.UUID,
	paymentAuthRef *string,
	version int64,
	createdAt, updatedAt time.Time,
) *Shift {
	return &Shift{
		id:                     id,
		venueID:                venueID,
		title:                  title,
		description:            description,
		window:                 window,
		hourlyRate:             hourlyRate,
		location:               location,
		state:                  state,
		assignedProfessionalID: assignedProfessionalID,
		paymentAuthRef:         paymentAuthRef,
		version:                version,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}
}

// MarkPending records that at least one offer is outstanding.
func (s *Shift) MarkPending() error {
	switch s.state {
	case StateOpen:
		s.state = StatePending
		return nil
	case StatePending:
		return nil
	default:
		return ErrNotInviteable
	}
}

// Confirm assigns the winning professional. Callable only while pending;
// a second confirmation attempt surfaces ErrAlreadyConfirmed so the caller
// can tell the loser the shift was just filled.
func (s *Shift) Confirm(professionalID uuid.UUID) error {
	switch s.state {
	case StatePending:
		s.state = StateConfirmed
		id := professionalID
		s.assignedProfessionalID = &id
		return nil
	case StateConfirmed, StateCompleted:
		return ErrAlreadyConfirmed
	default:
		return ErrNotPending
	}
}

// ReturnToOpen moves a pending shift with no remaining offers back to open.
func (s *Shift) ReturnToOpen() error {
	if s.state != StatePending {
		return ErrNotPending
	}
	if s.assignedProfessionalID != nil {
		return ErrStillAssigned
	}
	s.state = StateOpen
	return nil
}

// RevertToPending compensates a confirmation whose payment authorization
// failed. The optimistic reservation is undone; offers are reverted by the
// coordinator in the same transaction.
func (s *Shift) RevertToPending() error {
	if s.state != StateConfirmed {
		return ErrNotConfirmed
	}
	s.state = StatePending
	s.assignedProfessionalID = nil
	s.paymentAuthRef = nil
	return nil
}

// Cancel is absolute and unilateral from the owner. Idempotent on an already
// cancelled shift; only a completed shift refuses.
func (s *Shift) Cancel() error {
	switch s.state {
	case StateCompleted:
		return ErrCompleted
	case StateCancelled:
		return nil
	default:
		s.state = StateCancelled
		s.assignedProfessionalID = nil
		s.paymentAuthRef = nil
		return nil
	}
}

func (s *Shift) Complete(now time.Time) error {
	if s.state != StateConfirmed {
		return ErrNotConfirmed
	}
	if !s.window.EndedBy(now) {
		return ErrNotEnded
	}
	s.state = StateCompleted
	return nil
}

func (s *Shift) SetPaymentAuthRef(ref string) error {
	if s.state != StateConfirmed {
		return ErrNotConfirmed
	}
	s.paymentAuthRef = &ref
	return nil
}

func (s *Shift) IsOwnedBy(venueID uuid.UUID) bool {
	return s.venueID == venueID
}

func (s *Shift) EstimatedAmountCents() int64 {
	return s.hourlyRate.EstimateCents(s.window)
}

func (s *Shift) ID() uuid.UUID                      { return s.id }
func (s *Shift) VenueID() uuid.UUID                 { return s.venueID }
func (s *Shift) Title() string                      { return s.title }
func (s *Shift) Description() string                { return s.description }
func (s *Shift) Window() TimeWindow                 { return s.window }
func (s *Shift) HourlyRate() HourlyRate             { return s.hourlyRate }
func (s *Shift) Location() Location                 { return s.location }
func (s *Shift) State() State                       { return s.state }
func (s *Shift) AssignedProfessionalID() *uuid.UUID { return s.assignedProfessionalID }
func (s *Shift) PaymentAuthRef() *string            { return s.paymentAuthRef }
func (s *Shift) Version() int64                     { return s.version }
func (s *Shift) CreatedAt() time.Time               { return s.createdAt }
func (s *Shift) UpdatedAt() time.Time               { return s.updatedAt }

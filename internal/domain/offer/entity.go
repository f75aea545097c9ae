package offer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending = errors.New("offer is no longer pending")
	ErrExpired    = errors.New("offer has expired")
	ErrNotExpired = errors.New("offer has not reached its expiry horizon")
)

// Offer is one invitation extended to one professional for one shift.
// At most one offer per shift ever reaches accepted; the coordinator
// supersedes the rest in the same transaction.
type Offer struct {
	id             uuid.UUID
	shiftID        uuid.UUID
	professionalID uuid.UUID
	venueID        uuid.UUID
	outcome        Outcome
	issuedAt       time.Time
	expiresAt      time.Time
	resolvedAt     *time.Time
	version        int64
}

func NewOffer(shiftID, professionalID, venueID uuid.UUID, issuedAt time.Time, ttl time.Duration) *Offer {
	return &Offer{
		id:             uuid.New(),
		shiftID:        shiftID,
		professionalID: professionalID,
		venueID:        venueID,
		outcome:        OutcomePending,
		issuedAt:       issuedAt,
		expiresAt:      issuedAt.Add(ttl),
	}
}

func Reconstruct(
	id, shiftID, professionalID, venueID uuid.UUID,
	outcome Outcome,
	issuedAt, expiresAt time.Time,
	resolvedAt *time.Time,
	version int64,
) *Offer {
	return &Offer{
		id:             id,
		shiftID:        shiftID,
		professionalID: professionalID,
		venueID:        venueID,
		outcome:        outcome,
		issuedAt:       issuedAt,
		expiresAt:      expiresAt,
		resolvedAt:     resolvedAt,
		version:        version,
	}
}

func (o *Offer) IsExpiredAt(now time.Time) bool {
	return o.outcome == OutcomePending && now.After(o.expiresAt)
}

func (o *Offer) Accept(now time.Time) error {
	if o.outcome != OutcomePending {
		return ErrNotPending
	}
	if now.After(o.expiresAt) {
		return ErrExpired
	}
	o.resolve(OutcomeAccepted, now)
	return nil
}

func (o *Offer) Decline(now time.Time) error {
	if o.outcome != OutcomePending {
		return ErrNotPending
	}
	o.resolve(OutcomeDeclined, now)
	return nil
}

func (o *Offer) Expire(now time.Time) error {
	if o.outcome != OutcomePending {
		return ErrNotPending
	}
	if !now.After(o.expiresAt) {
		return ErrNotExpired
	}
	o.resolve(OutcomeExpired, now)
	return nil
}

func (o *Offer) Supersede(now time.Time) error {
	if o.outcome != OutcomePending {
		return ErrNotPending
	}
	o.resolve(OutcomeSuperseded, now)
	return nil
}

// RevertToPending compensates an accept whose payment authorization failed.
// Valid for the accepted offer and for siblings superseded by that accept.
func (o *Offer) RevertToPending() error {
	if o.outcome != OutcomeAccepted && o.outcome != OutcomeSuperseded {
		return ErrNotPending
	}
	o.outcome = OutcomePending
	o.resolvedAt = nil
	return nil
}

func (o *Offer) resolve(outcome Outcome, now time.Time) {
	o.outcome = outcome
	t := now
	o.resolvedAt = &t
}

func (o *Offer) ID() uuid.UUID             { return o.id }
func (o *Offer) ShiftID() uuid.UUID        { return o.shiftID }
func (o *Offer) ProfessionalID() uuid.UUID { return o.professionalID }
func (o *Offer) VenueID() uuid.UUID        { return o.venueID }
func (o *Offer) Outcome() Outcome          { return o.outcome }
func (o *Offer) IssuedAt() time.Time       { return o.issuedAt }
func (o *Offer) ExpiresAt() time.Time      { return o.expiresAt }
func (o *Offer) ResolvedAt() *time.Time    { return o.resolvedAt }
func (o *Offer) Version() int64            { return o.version }

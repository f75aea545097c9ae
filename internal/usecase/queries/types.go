package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ShiftView struct {
	ID                     uuid.UUID  `json:"id"`
	VenueID                uuid.UUID  `json:"venue_id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	StartTime              time.Time  `json:"start_time"`
	EndTime                time.Time  `json:"end_time"`
	HourlyRateCents        int64      `json:"hourly_rate_cents"`
	Location               string     `json:"location"`
	State                  string     `json:"state"`
	AssignedProfessionalID *uuid.UUID `json:"assigned_professional_id,omitempty"`
	PendingOffers          int        `json:"pending_offers"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ShiftBlock is the venue-facing calendar block: a ShiftView plus its
// projected display state.
type ShiftBlock struct {
	ShiftView
	BlockState string `json:"block_state"`
}

type OfferView struct {
	ID              uuid.UUID  `json:"id"`
	ShiftID         uuid.UUID  `json:"shift_id"`
	ShiftTitle      string     `json:"shift_title"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	HourlyRateCents int64      `json:"hourly_rate_cents"`
	Location        string     `json:"location"`
	ProfessionalID  uuid.UUID  `json:"professional_id"`
	VenueID         uuid.UUID  `json:"venue_id"`
	Outcome         string     `json:"outcome"`
	IssuedAt        time.Time  `json:"issued_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// InboxEntry is the professional-facing view of an offer. Actionable goes
// false the moment the offer resolves or passes its expiry horizon, so a
// stale entry is never presented as acceptable.
type InboxEntry struct {
	OfferView
	Actionable bool `json:"actionable"`
}

type UserAuthView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

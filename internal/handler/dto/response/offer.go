package response

import (
	"time"

	"shiftlink/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferResponse struct {
	ID              uuid.UUID  `json:"id"`
	ShiftID         uuid.UUID  `json:"shiftId"`
	ShiftTitle      string     `json:"shiftTitle"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	HourlyRateCents int64      `json:"hourlyRateCents"`
	Location        string     `json:"location"`
	ProfessionalID  uuid.UUID  `json:"professionalId"`
	VenueID         uuid.UUID  `json:"venueId"`
	Outcome         string     `json:"outcome"`
	IssuedAt        time.Time  `json:"issuedAt"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
}

type InboxEntryResponse struct {
	OfferResponse
	Actionable bool `json:"actionable"`
}

func FromOfferView(v *queries.OfferView) *OfferResponse {
	return &OfferResponse{
		ID:              v.ID,
		ShiftID:         v.ShiftID,
		ShiftTitle:      v.ShiftTitle,
		StartTime:       v.StartTime,
		EndTime:         v.EndTime,
		HourlyRateCents: v.HourlyRateCents,
		Location:        v.Location,
		ProfessionalID:  v.ProfessionalID,
		VenueID:         v.VenueID,
		Outcome:         v.Outcome,
		IssuedAt:        v.IssuedAt,
		ExpiresAt:       v.ExpiresAt,
		ResolvedAt:      v.ResolvedAt,
	}
}

func FromInboxEntry(e *queries.InboxEntry) *InboxEntryResponse {
	return &InboxEntryResponse{
		OfferResponse: *FromOfferView(&e.OfferView),
		Actionable:    e.Actionable,
	}
}

package response

import (
	"time"

	"shiftlink/internal/usecase/queries"

	"github.com/google/uuid"
)

type ShiftResponse struct {
	ID                     uuid.UUID  `json:"id"`
	VenueID                uuid.UUID  `json:"venueId"`
	Title                  string     `json:"title"`
	Description            string     `json:"description,omitempty"`
	StartTime              time.Time  `json:"startTime"`
	EndTime                time.Time  `json:"endTime"`
	HourlyRateCents        int64      `json:"hourlyRateCents"`
	Location               string     `json:"location"`
	State                  string     `json:"state"`
	AssignedProfessionalID *uuid.UUID `json:"assignedProfessionalId,omitempty"`
	PendingOffers          int        `json:"pendingOffers"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// ShiftBlockResponse is the calendar view: the shift plus its display state
// (ghost, pending, confirmed).
type ShiftBlockResponse struct {
	ShiftResponse
	BlockState string `json:"blockState"`
}

func FromShiftView(v *queries.ShiftView) *ShiftResponse {
	return &ShiftResponse{
		ID:                     v.ID,
		VenueID:                v.VenueID,
		Title:                  v.Title,
		Description:            v.Description,
		StartTime:              v.StartTime,
		EndTime:                v.EndTime,
		HourlyRateCents:        v.HourlyRateCents,
		Location:               v.Location,
		State:                  v.State,
		AssignedProfessionalID: v.AssignedProfessionalID,
		PendingOffers:          v.PendingOffers,
		CreatedAt:              v.CreatedAt,
		UpdatedAt:              v.UpdatedAt,
	}
}

func FromShiftBlock(b *queries.ShiftBlock) *ShiftBlockResponse {
	return &ShiftBlockResponse{
		ShiftResponse: *FromShiftView(&b.ShiftView),
		BlockState:    b.BlockState,
	}
}

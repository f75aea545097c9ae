package request

import (
	"strings"
	"time"

	"shiftlink/internal/domain/shift"

	"github.com/google/uuid"
)

type CreateShiftRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Description     string    `json:"description" binding:"max=2000"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	HourlyRateCents int64     `json:"hourly_rate_cents" binding:"required,gt=0"`
	Location        string    `json:"location" binding:"required,max=300"`
}

func (r CreateShiftRequest) ToDomain(venueID uuid.UUID, now time.Time) (*shift.Shift, error) {
	window, err := shift.NewTimeWindow(r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}

	rate, err := shift.NewHourlyRate(r.HourlyRateCents)
	if err != nil {
		return nil, err
	}

	return shift.NewShift(
		venueID,
		strings.TrimSpace(r.Title),
		strings.TrimSpace(r.Description),
		window,
		rate,
		shift.NewLocation(strings.TrimSpace(r.Location)),
		now,
	)
}

type InviteProfessionalRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
}

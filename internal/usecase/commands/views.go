package commands

import (
	"shiftlink/internal/domain/offer"
	"shiftlink/internal/domain/shift"
	"shiftlink/internal/usecase/queries"
)

// Write-side conversions so commands can return fresh views without a
// read-after-write round trip.

func shiftViewOf(s *shift.Shift, pendingOffers int) *queries.ShiftView {
	return &queries.ShiftView{
		ID:                     s.ID(),
		VenueID:                s.VenueID(),
		Title:                  s.Title(),
		Description:            s.Description(),
		StartTime:              s.Window().Start(),
		EndTime:                s.Window().End(),
		HourlyRateCents:        s.HourlyRate().Cents(),
		Location:               s.Location().String(),
		State:                  s.State().String(),
		AssignedProfessionalID: s.AssignedProfessionalID(),
		PendingOffers:          pendingOffers,
		CreatedAt:              s.CreatedAt(),
		UpdatedAt:              s.UpdatedAt(),
	}
}

func offerViewOf(o *offer.Offer, s *shift.Shift) *queries.OfferView {
	return &queries.OfferView{
		ID:              o.ID(),
		ShiftID:         o.ShiftID(),
		ShiftTitle:      s.Title(),
		StartTime:       s.Window().Start(),
		EndTime:         s.Window().End(),
		HourlyRateCents: s.HourlyRate().Cents(),
		Location:        s.Location().String(),
		ProfessionalID:  o.ProfessionalID(),
		VenueID:         o.VenueID(),
		Outcome:         o.Outcome().String(),
		IssuedAt:        o.IssuedAt(),
		ExpiresAt:       o.ExpiresAt(),
		ResolvedAt:      o.ResolvedAt(),
	}
}

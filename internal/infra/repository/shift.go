package repository

import (
	"context"

	"shiftlink/internal/domain/shift"
	"shiftlink/internal/infra"
	"shiftlink/internal/infra/db"
	"shiftlink/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ShiftRepository struct {
	db db.DBTX
}

func NewShiftRepository(db db.DBTX) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const createShiftSQL = `
INSERT INTO shifts (
    id, venue_id, title, description, start_time, end_time,
    hourly_rate_cents, location, state, version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, now(), now())
`

func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) error {
	_, err := r.db.Exec(ctx, createShiftSQL,
		pgconv.UUIDToPgtype(s.ID()),
		pgconv.UUIDToPgtype(s.VenueID()),
		s.Title(),
		s.Description(),
		pgconv.TimeToPgtype(s.Window().Start()),
		pgconv.TimeToPgtype(s.Window().End()),
		s.HourlyRate().Cents(),
		s.Location().String(),
		s.State().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create shift", err)
	}
	return nil
}

const findShiftSQL = `
SELECT id, venue_id, title, description, start_time, end_time,
       hourly_rate_cents, location, state, assigned_professional_id,
       payment_auth_ref, version, created_at, updated_at
FROM shifts
WHERE id = $1
`

func (r *ShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.Shift, error) {
	row := r.db.QueryRow(ctx, findShiftSQL, pgconv.UUIDToPgtype(id))

	var (
		shiftID, venueID       pgtype.UUID
		title, description     string
		startTime, endTime     pgtype.Timestamptz
		rateCents              int64
		location, state        string
		assignedProfessionalID pgtype.UUID
		paymentAuthRef         pgtype.Text
		version                int64
		createdAt, updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&shiftID, &venueID, &title, &description, &startTime, &endTime,
		&rateCents, &location, &state, &assignedProfessionalID,
		&paymentAuthRef, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shift not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shift", err)
	}

	window, err := shift.NewTimeWindow(pgconv.TimeFromPgtype(startTime), pgconv.TimeFromPgtype(endTime))
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt shift window", err)
	}
	rate, err := shift.NewHourlyRate(rateCents)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt shift rate", err)
	}

	return shift.Reconstruct(
		uuid.UUID(shiftID.Bytes),
		uuid.UUID(venueID.Bytes),
		title,
		description,
		window,
		rate,
		shift.NewLocation(location),
		shift.State(state),
		pgconv.UUIDPtrFromPgtype(assignedProfessionalID),
		pgconv.StringPtrFromPgtype(paymentAuthRef),
		version,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const updateShiftSQL = `
UPDATE shifts
SET state = $2,
    assigned_professional_id = $3,
    payment_auth_ref = $4,
    version = version + 1,
    updated_at = now()
WHERE id = $1 AND version = $5
`

// Update applies the optimistic version check: a stale entity loses with
// KindVersionConflict and the caller reloads and retries.
func (r *ShiftRepository) Update(ctx context.Context, s *shift.Shift) error {
	tag, err := r.db.Exec(ctx, updateShiftSQL,
		pgconv.UUIDToPgtype(s.ID()),
		s.State().String(),
		pgconv.UUIDPtrToPgtype(s.AssignedProfessionalID()),
		pgconv.StringPtrToPgtype(s.PaymentAuthRef()),
		s.Version(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update shift", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("shift version conflict", infra.KindVersionConflict)
	}
	return nil
}

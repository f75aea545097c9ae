package readstore

import (
	"context"
	"time"

	"shiftlink/internal/infra"
	"shiftlink/internal/infra/db"
	"shiftlink/internal/pkg/pgconv"
	"shiftlink/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ShiftReadStore struct {
	db db.DBTX
}

func NewShiftReadStore(db db.DBTX) *ShiftReadStore {
	return &ShiftReadStore{db: db}
}

const shiftViewSQL = `
SELECT s.id, s.venue_id, s.title, s.description, s.start_time, s.end_time,
       s.hourly_rate_cents, s.location, s.state, s.assigned_professional_id,
       (SELECT count(*) FROM offers o WHERE o.shift_id = s.id AND o.outcome = 'pending'),
       s.created_at, s.updated_at
FROM shifts s
`

func (r *ShiftReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ShiftView, error) {
	row := r.db.QueryRow(ctx, shiftViewSQL+"WHERE s.id = $1", pgconv.UUIDToPgtype(id))

	view, err := scanShiftView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shift not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shift", err)
	}
	return view, nil
}

func (r *ShiftReadStore) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*queries.ShiftView, error) {
	rows, err := r.db.Query(ctx,
		shiftViewSQL+"WHERE s.venue_id = $1 ORDER BY s.start_time",
		pgconv.UUIDToPgtype(venueID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list venue shifts", err)
	}
	defer rows.Close()

	return collectShiftViews(rows)
}

// ListConfirmedOverlapping finds shifts the professional is already committed
// to inside the window. Used for the double-booking advisory on invite.
func (r *ShiftReadStore) ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time) ([]*queries.ShiftView, error) {
	rows, err := r.db.Query(ctx,
		shiftViewSQL+`WHERE s.assigned_professional_id = $1
  AND s.state IN ('confirmed', 'completed')
  AND s.start_time < $3 AND s.end_time > $2
ORDER BY s.start_time`,
		pgconv.UUIDToPgtype(professionalID),
		pgconv.TimeToPgtype(start),
		pgconv.TimeToPgtype(end),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping shifts", err)
	}
	defer rows.Close()

	return collectShiftViews(rows)
}

func collectShiftViews(rows pgx.Rows) ([]*queries.ShiftView, error) {
	var views []*queries.ShiftView
	for rows.Next() {
		view, err := scanShiftView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan shift", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate shifts", err)
	}
	return views, nil
}

func scanShiftView(row pgx.Row) (*queries.ShiftView, error) {
	var (
		id, venueID            pgtype.UUID
		title, description     string
		startTime, endTime     pgtype.Timestamptz
		rateCents              int64
		location, state        string
		assignedProfessionalID pgtype.UUID
		pendingOffers          int
		createdAt, updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &venueID, &title, &description, &startTime, &endTime,
		&rateCents, &location, &state, &assignedProfessionalID,
		&pendingOffers, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &queries.ShiftView{
		ID:                     uuid.UUID(id.Bytes),
		VenueID:                uuid.UUID(venueID.Bytes),
		Title:                  title,
		Description:            description,
		StartTime:              pgconv.TimeFromPgtype(startTime),
		EndTime:                pgconv.TimeFromPgtype(endTime),
		HourlyRateCents:        rateCents,
		Location:               location,
		State:                  state,
		AssignedProfessionalID: pgconv.UUIDPtrFromPgtype(assignedProfessionalID),
		PendingOffers:          pendingOffers,
		CreatedAt:              pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:              pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

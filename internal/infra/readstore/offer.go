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

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(db db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: db}
}

const offerViewSQL = `
SELECT o.id, o.shift_id, s.title, s.start_time, s.end_time,
       s.hourly_rate_cents, s.location,
       o.professional_id, o.venue_id, o.outcome,
       o.issued_at, o.expires_at, o.resolved_at
FROM offers o
JOIN shifts s ON s.id = o.shift_id
`

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	row := r.db.QueryRow(ctx, offerViewSQL+"WHERE o.id = $1", pgconv.UUIDToPgtype(id))

	view, err := scanOfferView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}
	return view, nil
}

func (r *OfferReadStore) ListByProfessional(ctx context.Context, professionalID uuid.UUID, outcome *string) ([]*queries.OfferView, error) {
	sql := offerViewSQL + "WHERE o.professional_id = $1"
	args := []any{pgconv.UUIDToPgtype(professionalID)}
	if outcome != nil {
		sql += " AND o.outcome = $2"
		args = append(args, *outcome)
	}
	sql += " ORDER BY o.issued_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	defer rows.Close()

	return collectOfferViews(rows)
}

// ListExpiredPending feeds the expiry sweep: pending offers whose horizon has
// passed, oldest first, bounded so a large backlog is worked in batches.
func (r *OfferReadStore) ListExpiredPending(ctx context.Context, horizon time.Time, limit int) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx,
		offerViewSQL+"WHERE o.outcome = 'pending' AND o.expires_at < $1 ORDER BY o.expires_at LIMIT $2",
		pgconv.TimeToPgtype(horizon),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired offers", err)
	}
	defer rows.Close()

	return collectOfferViews(rows)
}

func collectOfferViews(rows pgx.Rows) ([]*queries.OfferView, error) {
	var views []*queries.OfferView
	for rows.Next() {
		view, err := scanOfferView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return views, nil
}

func scanOfferView(row pgx.Row) (*queries.OfferView, error) {
	var (
		id, shiftID         pgtype.UUID
		title               string
		startTime, endTime  pgtype.Timestamptz
		rateCents           int64
		location            string
		professionalID      pgtype.UUID
		venueID             pgtype.UUID
		outcome             string
		issuedAt, expiresAt pgtype.Timestamptz
		resolvedAt          pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &shiftID, &title, &startTime, &endTime,
		&rateCents, &location,
		&professionalID, &venueID, &outcome,
		&issuedAt, &expiresAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	return &queries.OfferView{
		ID:              uuid.UUID(id.Bytes),
		ShiftID:         uuid.UUID(shiftID.Bytes),
		ShiftTitle:      title,
		StartTime:       pgconv.TimeFromPgtype(startTime),
		EndTime:         pgconv.TimeFromPgtype(endTime),
		HourlyRateCents: rateCents,
		Location:        location,
		ProfessionalID:  uuid.UUID(professionalID.Bytes),
		VenueID:         uuid.UUID(venueID.Bytes),
		Outcome:         outcome,
		IssuedAt:        pgconv.TimeFromPgtype(issuedAt),
		ExpiresAt:       pgconv.TimeFromPgtype(expiresAt),
		ResolvedAt:      pgconv.TimePtrFromPgtype(resolvedAt),
	}, nil
}

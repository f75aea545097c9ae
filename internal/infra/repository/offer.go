package repository

import (
	"context"

	"shiftlink/internal/domain/offer"
	"shiftlink/internal/infra"
	"shiftlink/internal/infra/db"
	"shiftlink/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferRepository struct {
	db db.DBTX
}

func NewOfferRepository(db db.DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

const createOfferSQL = `
INSERT INTO offers (
    id, shift_id, professional_id, venue_id, outcome,
    issued_at, expires_at, version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, 1, now(), now())
`

func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	_, err := r.db.Exec(ctx, createOfferSQL,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.ShiftID()),
		pgconv.UUIDToPgtype(o.ProfessionalID()),
		pgconv.UUIDToPgtype(o.VenueID()),
		o.Outcome().String(),
		pgconv.TimeToPgtype(o.IssuedAt()),
		pgconv.TimeToPgtype(o.ExpiresAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create offer", err)
	}
	return nil
}

const offerColumns = `
SELECT id, shift_id, professional_id, venue_id, outcome,
       issued_at, expires_at, resolved_at, version
FROM offers
`

func (r *OfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	row := r.db.QueryRow(ctx, offerColumns+"WHERE id = $1", pgconv.UUIDToPgtype(id))

	o, err := scanOffer(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}
	return o, nil
}

func (r *OfferRepository) ListPendingByShift(ctx context.Context, shiftID uuid.UUID) ([]*offer.Offer, error) {
	rows, err := r.db.Query(ctx,
		offerColumns+"WHERE shift_id = $1 AND outcome = 'pending' ORDER BY issued_at",
		pgconv.UUIDToPgtype(shiftID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending offers", err)
	}
	defer rows.Close()

	var offers []*offer.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return offers, nil
}

func (r *OfferRepository) FindPendingByShiftAndProfessional(ctx context.Context, shiftID, professionalID uuid.UUID) (*offer.Offer, error) {
	row := r.db.QueryRow(ctx,
		offerColumns+"WHERE shift_id = $1 AND professional_id = $2 AND outcome = 'pending'",
		pgconv.UUIDToPgtype(shiftID),
		pgconv.UUIDToPgtype(professionalID),
	)

	o, err := scanOffer(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pending offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pending offer", err)
	}
	return o, nil
}

const updateOfferSQL = `
UPDATE offers
SET outcome = $2,
    resolved_at = $3,
    version = version + 1,
    updated_at = now()
WHERE id = $1 AND version = $4
`

func (r *OfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	tag, err := r.db.Exec(ctx, updateOfferSQL,
		pgconv.UUIDToPgtype(o.ID()),
		o.Outcome().String(),
		pgconv.TimePtrToPgtype(o.ResolvedAt()),
		o.Version(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("offer version conflict", infra.KindVersionConflict)
	}
	return nil
}

func scanOffer(row pgx.Row) (*offer.Offer, error) {
	var (
		id, shiftID         pgtype.UUID
		professionalID      pgtype.UUID
		venueID             pgtype.UUID
		outcome             string
		issuedAt, expiresAt pgtype.Timestamptz
		resolvedAt          pgtype.Timestamptz
		version             int64
	)
	err := row.Scan(&id, &shiftID, &professionalID, &venueID, &outcome,
		&issuedAt, &expiresAt, &resolvedAt, &version)
	if err != nil {
		return nil, err
	}

	return offer.Reconstruct(
		uuid.UUID(id.Bytes),
		uuid.UUID(shiftID.Bytes),
		uuid.UUID(professionalID.Bytes),
		uuid.UUID(venueID.Bytes),
		offer.Outcome(outcome),
		pgconv.TimeFromPgtype(issuedAt),
		pgconv.TimeFromPgtype(expiresAt),
		pgconv.TimePtrFromPgtype(resolvedAt),
		version,
	), nil
}

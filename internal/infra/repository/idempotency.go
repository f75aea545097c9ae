package repository

import (
	"context"
	"time"

	"shiftlink/internal/infra"
	"shiftlink/internal/infra/db"
	"shiftlink/internal/pkg/pgconv"
	"shiftlink/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now())
ON CONFLICT (key, user_id) DO NOTHING
`

// TryInsert claims the key atomically; an existing row is not an error, the
// caller reads it back and decides between resume, replay, and rejection.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, tryInsertIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return nil
}

const getIdempotencySQL = `
SELECT key, user_id, endpoint, request_hash, status, result_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row := r.db.QueryRow(ctx, getIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
	)

	var (
		k, uid    pgtype.UUID
		endpoint  string
		hash      string
		status    string
		resultID  pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := row.Scan(&k, &uid, &endpoint, &hash, &status, &resultID, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:         uuid.UUID(k.Bytes),
		UserID:      uuid.UUID(uid.Bytes),
		Endpoint:    endpoint,
		RequestHash: hash,
		Status:      status,
		ResultID:    pgconv.UUIDPtrFromPgtype(resultID),
		ExpiresAt:   pgconv.TimeFromPgtype(expiresAt),
	}, nil
}

const markCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', result_id = $3
WHERE key = $1 AND user_id = $2 AND status = 'processing'
`

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID, resultID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, markCompletedSQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		pgconv.UUIDToPgtype(resultID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("idempotency key not in processing state", infra.KindConflict)
	}
	return nil
}

func (r *IdempotencyRepository) Delete(ctx context.Context, key, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM idempotency_keys WHERE key = $1 AND user_id = $2",
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete idempotency key", err)
	}
	return nil
}

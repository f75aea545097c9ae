package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"shiftlink/internal/pkg/errs"
	"shiftlink/internal/usecase/shared"

	"github.com/google/uuid"
)

const idempotencyKeyTTL = 24 * time.Hour

// claimIdempotency inserts the key in processing state or resolves a replay.
// A nil replay id with a nil error means the caller owns the key and must
// complete or release it.
func (a *assignmentCommandsImpl) claimIdempotency(
	ctx context.Context,
	key, userID uuid.UUID,
	endpoint string,
	payload any,
) (*uuid.UUID, error) {
	requestHash := calculateRequestHash(endpoint, payload)
	expiresAt := a.clock.Now().Add(idempotencyKeyTTL)

	var replayID *uuid.UUID
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Idempotency().TryInsert(ctx, key, userID, endpoint, requestHash, expiresAt); err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}

		record, err := tx.Idempotency().Get(ctx, key, userID)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}

		switch record.Status {
		case shared.IdempotencyStatusCompleted:
			if record.ResultID == nil {
				return errs.New("completed request missing result id")
			}
			replayID = record.ResultID
			return nil

		case shared.IdempotencyStatusProcessing:
			if record.RequestHash != requestHash {
				return ErrDuplicateRequest
			}
			return nil

		default:
			return errs.New("invalid idempotency key status")
		}
	})
	if err != nil {
		return nil, err
	}
	return replayID, nil
}

// releaseIdempotency removes a claimed key after a terminal business failure
// so the caller can retry with the same key once the condition is resolved.
func (a *assignmentCommandsImpl) releaseIdempotency(ctx context.Context, key, userID uuid.UUID) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Delete(ctx, key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key, "error", err.Error())
	}
}

func calculateRequestHash(endpoint string, payload any) string {
	data, _ := json.Marshal(map[string]any{"endpoint": endpoint, "payload": payload})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

package shared

import (
	"context"
	"time"

	"shiftlink/internal/domain/offer"
	"shiftlink/internal/domain/shift"

	"github.com/google/uuid"
)

// UnitOfWork runs fn atomically: either every write in fn commits or none
// does. Supersede-siblings relies on this — a partially superseded batch must
// never be observable.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Shifts() ShiftRepository
	Offers() OfferRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
}

// ShiftRepository is the sole mutation path for shifts. Update applies the
// optimistic version check against the entity's loaded version and fails with
// KindVersionConflict on a stale write.
type ShiftRepository interface {
	Create(ctx context.Context, s *shift.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*shift.Shift, error)
	Update(ctx context.Context, s *shift.Shift) error
}

type OfferRepository interface {
	Create(ctx context.Context, o *offer.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error)
	ListPendingByShift(ctx context.Context, shiftID uuid.UUID) ([]*offer.Offer, error)
	FindPendingByShiftAndProfessional(ctx context.Context, shiftID, professionalID uuid.UUID) (*offer.Offer, error)
	Update(ctx context.Context, o *offer.Offer) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultID uuid.UUID) error
	Delete(ctx context.Context, key, userID uuid.UUID) error
}

// NotificationRepository is the read-model/notification sink: state-change
// events are enqueued transactionally with the state change itself.
type NotificationRepository interface {
	Enqueue(ctx context.Context, kind, topic string, payload []byte) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

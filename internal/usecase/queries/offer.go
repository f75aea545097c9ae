package queries

import (
	"context"
	"time"

	"shiftlink/internal/infra"
	"shiftlink/internal/pkg/clock"
	"shiftlink/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOfferNotFound = errs.New("offer not found")

type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID, outcome *string) ([]*OfferView, error)
	ListExpiredPending(ctx context.Context, horizon time.Time, limit int) ([]*OfferView, error)
}

type OfferQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	ListInbox(ctx context.Context, professionalID uuid.UUID, outcome *string) ([]*InboxEntry, error)
}

type offerQueriesImpl struct {
	store OfferReadStore
	clock clock.Clock
}

func NewOfferQueries(store OfferReadStore, clock clock.Clock) OfferQueries {
	return &offerQueriesImpl{store: store, clock: clock}
}

func (q *offerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Wrap(err, "failed to find offer")
	}
	return view, nil
}

func (q *offerQueriesImpl) ListInbox(ctx context.Context, professionalID uuid.UUID, outcome *string) ([]*InboxEntry, error) {
	views, err := q.store.ListByProfessional(ctx, professionalID, outcome)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list offers for professional")
	}

	now := q.clock.Now()
	entries := make([]*InboxEntry, len(views))
	for i, v := range views {
		entries[i] = ProjectInboxEntry(v, now)
	}
	return entries, nil
}

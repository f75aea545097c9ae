package queries

import (
	"context"
	"time"

	"shiftlink/internal/infra"
	"shiftlink/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrShiftNotFound = errs.New("shift not found")

type ShiftReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShiftView, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*ShiftView, error)
	ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time) ([]*ShiftView, error)
}

type ShiftQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ShiftView, error)
	ListVenueBlocks(ctx context.Context, venueID uuid.UUID) ([]*ShiftBlock, error)
}

type shiftQueriesImpl struct {
	store ShiftReadStore
}

func NewShiftQueries(store ShiftReadStore) ShiftQueries {
	return &shiftQueriesImpl{store: store}
}

func (q *shiftQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ShiftView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, errs.Wrap(err, "failed to find shift")
	}
	return view, nil
}

func (q *shiftQueriesImpl) ListVenueBlocks(ctx context.Context, venueID uuid.UUID) ([]*ShiftBlock, error) {
	views, err := q.store.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list venue shifts")
	}

	blocks := make([]*ShiftBlock, len(views))
	for i, v := range views {
		blocks[i] = ProjectBlock(v)
	}
	return blocks, nil
}

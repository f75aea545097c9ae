package queries

import (
	"context"

	"github.com/google/uuid"
)

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*UserAuthView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

package readstore

import (
	"context"

	"shiftlink/internal/infra"
	"shiftlink/internal/infra/db"
	"shiftlink/internal/pkg/pgconv"
	"shiftlink/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserAuthView, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, email, password_hash, role, is_active FROM users WHERE email = $1",
		email,
	)

	var (
		id           pgtype.UUID
		emailCol     string
		passwordHash string
		role         string
		isActive     bool
	)
	if err := row.Scan(&id, &emailCol, &passwordHash, &role, &isActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &queries.UserAuthView{
		ID:           uuid.UUID(id.Bytes),
		Email:        emailCol,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     isActive,
	}, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, email, role, is_active FROM users WHERE id = $1",
		pgconv.UUIDToPgtype(id),
	)

	var (
		userID   pgtype.UUID
		email    string
		role     string
		isActive bool
	)
	if err := row.Scan(&userID, &email, &role, &isActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}

	return &queries.AuthorizedUserView{
		ID:       uuid.UUID(userID.Bytes),
		Email:    email,
		Role:     role,
		IsActive: isActive,
	}, nil
}

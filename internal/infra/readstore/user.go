package readstore

import (
	"context"

	"coupon-service/internal/infra"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.FindUserByIDRow, error)
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
}

// UserReadStore serves the auth flows: credential lookup and the /auth/me view
// with coupon activity counts.
type UserReadStore struct {
	q  UserReadQueries
	db sqlc.DBTX
}

func NewUserReadStore(q UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{q: q, db: db}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CurrentUserView, error) {
	row, err := s.q.FindUserByID(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &queries.CurrentUserView{
		AuthorizedUserView: authorizedView(row.ID, row.Email, row.Role, row.IsActive),
		LastLogin:          pgconv.TimePtrFromPgtype(row.LastLogin),
		Redeemed:           int(row.RedeemedCount),
		Pending:            int(row.PendingCount),
	}, nil
}

// FindByEmail only sees active users and also returns the password hash.
func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := s.q.FindUserByEmail(ctx, s.db, email)
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	view := authorizedView(row.ID, row.Email, row.Role, row.IsActive)
	return &view, row.PasswordHash, nil
}

func authorizedView(id uuid.UUID, email, role string, active bool) queries.AuthorizedUserView {
	return queries.AuthorizedUserView{ID: id, Email: email, Role: role, IsActive: active}
}

package repository

import (
	"context"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/repository/converter"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserQueries interface {
	CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (uuid.UUID, error)
	RecordUserLogin(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordUserLoginParams) error
}

type UserRepository struct {
	queries UserQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{queries: queries, db: db}
}

// Create reports an email already held by an active account as KindDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.queries.CreateUser(ctx, r.db, converter.UserToCreateParams(u))
	switch {
	case err == nil:
		return nil
	case pgconv.IsNoRows(err):
		return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
	default:
		return infra.WrapRepoErr("failed to create user", err)
	}
}

func (r *UserRepository) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	err := r.queries.RecordUserLogin(ctx, r.db, sqlc.RecordUserLoginParams{
		ID:        userID,
		LastLogin: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record user login", err)
	}
	return nil
}

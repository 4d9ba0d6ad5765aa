//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/sqlc"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserQueries struct {
	mock.Mock
}

func (m *mockUserQueries) CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockUserQueries) RecordUserLogin(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordUserLoginParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func newAdmin(t *testing.T, createdAt time.Time) *user.User {
	t.Helper()
	email, err := user.NewEmail("root@example.com")
	require.NoError(t, err)
	return user.NewUser(email, "$2a$hash", user.RoleAdmin, createdAt)
}

func TestUserRepository_Create(t *testing.T) {
	createdAt := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	u := newAdmin(t, createdAt)

	tests := []struct {
		name     string
		queryErr error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "inserted"},
		{name: "email taken by an active account", queryErr: pgx.ErrNoRows, wantKind: infra.KindDuplicateKey},
		{name: "driver failure", queryErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(mockUserQueries)
			q.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateUserParams) bool {
				return p.ID == u.ID() &&
					p.Email == "root@example.com" &&
					p.Role == "admin" &&
					p.IsActive &&
					p.CreatedAt.Time.Equal(createdAt)
			})).Return(u.ID(), tt.queryErr)

			err := NewUserRepository(q, nil).Create(context.Background(), u)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			q.AssertExpectations(t)
		})
	}
}

func TestUserRepository_RecordLogin(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 2, 3, 10, 15, 0, 0, time.UTC)
	params := sqlc.RecordUserLoginParams{ID: id}
	params.LastLogin.Time, params.LastLogin.Valid = at, true

	t.Run("stores the given instant", func(t *testing.T) {
		q := new(mockUserQueries)
		q.On("RecordUserLogin", mock.Anything, mock.Anything, params).Return(nil)

		require.NoError(t, NewUserRepository(q, nil).RecordLogin(context.Background(), id, at))
		q.AssertExpectations(t)
	})

	t.Run("driver failure", func(t *testing.T) {
		q := new(mockUserQueries)
		q.On("RecordUserLogin", mock.Anything, mock.Anything, params).Return(assert.AnError)

		err := NewUserRepository(q, nil).RecordLogin(context.Background(), id, at)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.ErrorIs(t, err, assert.AnError)
	})
}

//go:build unit

package queries_test

import (
	"context"
	"testing"

	"coupon-service/internal/infra"
	"coupon-service/internal/usecase/queries"
	queriesmock "coupon-service/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserQueries_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name    string
		view    *queries.CurrentUserView
		readErr error
		wantErr error
	}{
		{
			name: "active user",
			view: &queries.CurrentUserView{
				AuthorizedUserView: queries.AuthorizedUserView{ID: id, IsActive: true},
				Redeemed:           4,
			},
		},
		{
			name:    "inactive user",
			view:    &queries.CurrentUserView{AuthorizedUserView: queries.AuthorizedUserView{ID: id}},
			wantErr: queries.ErrUserInactive,
		},
		{
			name:    "unknown user",
			readErr: infra.WrapRepoErr("failed to find user by ID", pgx.ErrNoRows),
			wantErr: queries.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readStore := queriesmock.NewMockUserReadStore(gomock.NewController(t))
			readStore.EXPECT().FindByID(ctx, id).Return(tt.view, tt.readErr)

			got, err := queries.NewUserQueries(readStore).GetCurrentUser(ctx, id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, got.Redeemed)
		})
	}

	t.Run("driver failure is not a missing user", func(t *testing.T) {
		readStore := queriesmock.NewMockUserReadStore(gomock.NewController(t))
		readStore.EXPECT().FindByID(ctx, id).Return(nil, infra.WrapRepoErr("failed to find user by ID", assert.AnError))

		_, err := queries.NewUserQueries(readStore).GetCurrentUser(ctx, id)
		require.Error(t, err)
		assert.NotErrorIs(t, err, queries.ErrUserNotFound)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

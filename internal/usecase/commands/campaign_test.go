//go:build unit

package commands_test

import (
	"context"
	"testing"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/shared"
	sharedmock "coupon-service/tests/mock/shared"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCampaignCommands_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		params    commands.CreateCampaignParams
		setupMock func(*sharedmock.MockCampaignRepository)
		expectErr error
	}{
		{
			name:   "success",
			params: commands.CreateCampaignParams{Name: "Spring", Description: "spring sale"},
			setupMock: func(m *sharedmock.MockCampaignRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
						return c, nil
					})
			},
		},
		{
			name:   "duplicate name",
			params: commands.CreateCampaignParams{Name: "Spring"},
			setupMock: func(m *sharedmock.MockCampaignRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, infra.WrapRepoErr("failed", &pgconn.PgError{Code: "23505"}))
			},
			expectErr: commands.ErrDuplicateCampaign,
		},
		{
			name:      "blank name",
			params:    commands.CreateCampaignParams{Name: "  "},
			expectErr: errs.ErrDomainValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uow := sharedmock.NewMockUnitOfWork(ctrl)
			tx := sharedmock.NewMockTx(ctrl)
			repo := sharedmock.NewMockCampaignRepository(ctrl)

			uow.EXPECT().Within(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
					return fn(ctx, tx)
				}).AnyTimes()
			tx.EXPECT().Campaigns().Return(repo).AnyTimes()
			if tc.setupMock != nil {
				tc.setupMock(repo)
			}

			got, err := commands.NewCampaignCommands(uow).Create(ctx, tc.params)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.params.Name, got.Name())
			assert.Equal(t, tc.params.Description, got.Description())
		})
	}
}

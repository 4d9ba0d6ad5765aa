package repository

import (
	"context"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/repository/converter"
	"coupon-service/internal/infra/sqlc"

	"github.com/google/uuid"
)

type CampaignQueries interface {
	CreateCampaign(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCampaignParams) (sqlc.Campaigns, error)
	CampaignExists(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (bool, error)
}

type CampaignRepository struct {
	queries CampaignQueries
	db      sqlc.DBTX
}

func NewCampaignRepository(queries CampaignQueries, db sqlc.DBTX) *CampaignRepository {
	return &CampaignRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
	row, err := r.queries.CreateCampaign(ctx, r.db, sqlc.CreateCampaignParams{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create campaign", err)
	}
	return converter.CampaignFromRow(row), nil
}

func (r *CampaignRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.queries.CampaignExists(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check campaign", err)
	}
	return exists, nil
}

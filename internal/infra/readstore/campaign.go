package readstore

import (
	"context"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"
	"coupon-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type CampaignReadQueries interface {
	ListCampaignsWithStats(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]sqlc.ListCampaignsWithStatsRow, error)
}

type CampaignReadStore struct {
	queries CampaignReadQueries
	db      sqlc.DBTX
}

func NewCampaignReadStore(queries CampaignReadQueries, db sqlc.DBTX) *CampaignReadStore {
	return &CampaignReadStore{
		queries: queries,
		db:      db,
	}
}

// ListWithStats reports expiry relative to now.
func (r *CampaignReadStore) ListWithStats(ctx context.Context, now time.Time) ([]*queries.CampaignView, error) {
	rows, err := r.queries.ListCampaignsWithStats(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaigns", err)
	}

	views := make([]*queries.CampaignView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &queries.CampaignView{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			CreatedAt:   row.CreatedAt.Time,
			Stats: campaign.ComputeStats(
				int(row.Total),
				int(row.Used),
				int(row.Expired),
				int(row.UsedAndExpired),
			),
		})
	}
	return views, nil
}

package queries

import (
	"context"
	"time"

	"coupon-service/internal/pkg/clock"
)

type CampaignReadStore interface {
	ListWithStats(ctx context.Context, now time.Time) ([]*CampaignView, error)
}

type CampaignQueries interface {
	List(ctx context.Context) ([]*CampaignView, error)
}

type campaignQueriesImpl struct {
	readStore CampaignReadStore
	clock     clock.Clock
}

func NewCampaignQueries(readStore CampaignReadStore, clk clock.Clock) CampaignQueries {
	return &campaignQueriesImpl{
		readStore: readStore,
		clock:     clk,
	}
}

func (q *campaignQueriesImpl) List(ctx context.Context) ([]*CampaignView, error) {
	return q.readStore.ListWithStats(ctx, q.clock.Now())
}

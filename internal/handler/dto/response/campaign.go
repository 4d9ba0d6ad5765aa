package response

import (
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CampaignStatsResponse struct {
	Total   int `json:"total"`
	Used    int `json:"used"`
	Unused  int `json:"unused"`
	Expired int `json:"expired"`
}

type CampaignResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"created_at"`
	Stats       *CampaignStatsResponse `json:"stats,omitempty"`
}

func FromCampaign(c *campaign.Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
	}
}

func FromCampaignViews(views []*queries.CampaignView) []*CampaignResponse {
	res := make([]*CampaignResponse, len(views))
	for i, v := range views {
		var stats CampaignStatsResponse
		_ = copier.Copy(&stats, &v.Stats)
		res[i] = &CampaignResponse{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			CreatedAt:   v.CreatedAt,
			Stats:       &stats,
		}
	}
	return res
}

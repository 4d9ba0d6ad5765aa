package request

type CreateCampaignRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

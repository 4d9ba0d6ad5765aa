package api

import (
	"net/http"

	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	cmds commands.CampaignCommands
	q    queries.CampaignQueries
}

func NewCampaignHandler(cmds commands.CampaignCommands, q queries.CampaignQueries) *CampaignHandler {
	return &CampaignHandler{cmds: cmds, q: q}
}

// @Summary List campaigns
// @Description Campaigns with total, used, unused and expired coupon counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CampaignResponse
// @Router /admin/campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCampaignViews(views))
}

// @Summary Create campaign
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCampaignRequest true "Campaign"
// @Success 201 {object} resdto.CampaignResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var req reqdto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	created, err := h.cmds.Create(c.Request.Context(), commands.CreateCampaignParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCampaign(created))
}

package api

import (
	"net/http"

	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminCouponHandler struct {
	cmds commands.CouponCommands
	q    queries.CouponQueries
}

func NewAdminCouponHandler(cmds commands.CouponCommands, q queries.CouponQueries) *AdminCouponHandler {
	return &AdminCouponHandler{cmds: cmds, q: q}
}

// @Summary List coupons
// @Description Newest first with keyset pagination
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type query string false "Coupon type"
// @Param campaign_id query string false "Campaign ID"
// @Param q query string false "Code search"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.CouponListResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/coupons [get]
func (h *AdminCouponHandler) List(c *gin.Context) {
	var query reqdto.ListCouponsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filters, err := query.ToFilters()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign id", nil)
		return
	}

	items, next, err := h.q.List(c.Request.Context(), filters, query.Cursor(), query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponList(items, next))
}

// @Summary Create coupon
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon"
// @Success 201 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/coupons [post]
func (h *AdminCouponHandler) Create(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	userLimit := 1
	if req.UserLimit != nil {
		userLimit = *req.UserLimit
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := h.cmds.Create(c.Request.Context(), commands.CreateCouponParams{
		Code:          req.Code,
		Type:          req.Type,
		Value:         req.Value,
		UserLimit:     userLimit,
		Bulk:          req.Bulk,
		BulkNumber:    req.BulkNumber,
		ValidUntil:    req.ValidUntil,
		Active:        active,
		ValidProducts: req.ValidProducts,
		CampaignID:    req.CampaignID,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCoupon(created))
}

// @Summary Generate coupons
// @Description Create a batch of single use coupons with random codes
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateCouponsRequest true "Generation form"
// @Success 201 {array} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/coupons/generate [post]
func (h *AdminCouponHandler) Generate(c *gin.Context) {
	var req reqdto.GenerateCouponsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	created, err := h.cmds.Generate(c.Request.Context(), commands.GenerateCouponsParams{
		Quantity:   req.Quantity,
		Type:       req.Type,
		Value:      req.Value,
		ValidUntil: req.ValidUntil,
		Prefix:     req.Prefix,
		CampaignID: req.CampaignID,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCoupons(created))
}

// @Summary Get coupon
// @Description Coupon with its products and consumption records
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} resdto.CouponDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/coupons/{id} [get]
func (h *AdminCouponHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponDetailView(view))
}

// @Summary Update coupon
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.UpdateCouponRequest true "Fields to change"
// @Success 200 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/coupons/{id} [patch]
func (h *AdminCouponHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	updated, err := h.cmds.Update(c.Request.Context(), id, commands.UpdateCouponParams{
		Active:          req.Active,
		ValidUntil:      req.ValidUntil,
		ClearValidUntil: req.ClearValidUntil,
		UserLimit:       req.UserLimit,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCoupon(updated))
}

// @Summary Bind user to coupon
// @Description Create an unredeemed consumption record for the user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.BindUserRequest true "User"
// @Success 201 {object} resdto.ConsumptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/coupons/{id}/users [post]
func (h *AdminCouponHandler) BindUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.BindUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	rec, err := h.cmds.BindUser(c.Request.Context(), id, req.UserID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromConsumption(rec))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

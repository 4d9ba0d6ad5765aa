package api

import (
	"net/http"

	"coupon-service/internal/domain/coupon"
	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/handler/middleware"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	cmds commands.CouponCommands
	q    queries.CouponQueries
}

func NewCouponHandler(cmds commands.CouponCommands, q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{cmds: cmds, q: q}
}

// @Summary Coupon details
// @Description Evaluate a code and return its value. Always 200: either {code, value, type} or {err, reason}.
// @Tags coupons
// @Produce json
// @Param code query string true "Coupon code"
// @Param types query string false "Comma-delimited allowed coupon types"
// @Param products query string false "Comma-delimited product names"
// @Success 200 {object} resdto.CouponDetailsResponse
// @Router /coupons/details [get]
func (h *CouponHandler) Details(c *gin.Context) {
	var req reqdto.CouponCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	details, err := h.q.GetDetails(c.Request.Context(), req.ToInput(middleware.OptionalUserID(c)))
	if err != nil {
		if rej, ok := coupon.AsRejection(err); ok {
			c.JSON(http.StatusOK, resdto.FromRejection(rej))
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponDetails(details))
}

// @Summary Validate coupon
// @Description Check whether a code can be used by the caller without redeeming it
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.CouponCodeRequest true "Coupon code"
// @Success 200 {object} resdto.ValidateCouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req reqdto.CouponCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.q.Evaluate(c.Request.Context(), req.ToInput(middleware.OptionalUserID(c)))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEvaluation(res))
}

// @Summary Redeem coupon
// @Description Evaluate and record a redemption for the caller
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.CouponCodeRequest true "Coupon code"
// @Success 201 {object} resdto.RedemptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /coupons/redeem [post]
func (h *CouponHandler) Redeem(c *gin.Context) {
	var req reqdto.CouponCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	in := req.ToInput(middleware.OptionalUserID(c))
	res, err := h.cmds.Redeem(c.Request.Context(), commands.RedeemParams{
		Code:            in.Code,
		UserID:          in.UserID,
		AllowedTypes:    in.AllowedTypes,
		AllowedProducts: in.AllowedProducts,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRedemption(res))
}

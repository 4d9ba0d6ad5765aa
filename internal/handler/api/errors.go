package api

import (
	"errors"
	"net/http"

	"coupon-service/internal/domain/coupon"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errs.New("invalid id")

// abortWithRejection answers a refused code with 422 and the stable reason code.
func abortWithRejection(c *gin.Context, rej *coupon.Rejection) {
	httperr.AbortWithError(c, http.StatusUnprocessableEntity, rej, rej.Error(), resdto.RejectionDetail{
		Field:  "code",
		Reason: rej.Reason.String(),
	})
}

func abortWithUseCaseError(c *gin.Context, err error) {
	if rej, ok := coupon.AsRejection(err); ok {
		abortWithRejection(c, rej)
		return
	}

	switch {
	case errors.Is(err, commands.ErrCouponNotFound),
		errors.Is(err, queries.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errors.Is(err, commands.ErrCampaignNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Campaign not found", nil)
	case errors.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errors.Is(err, commands.ErrDuplicateCouponCode):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon code already exists", nil)
	case errors.Is(err, commands.ErrDuplicateCampaign):
		httperr.AbortWithError(c, http.StatusConflict, err, "Campaign name already exists", nil)
	case errors.Is(err, commands.ErrUserAlreadyBound):
		httperr.AbortWithError(c, http.StatusConflict, err, "User already bound to coupon", nil)
	case errors.Is(err, commands.ErrCouponCapacityReached):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon has no capacity left", nil)
	case errors.Is(err, commands.ErrInvalidQuantity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid quantity", nil)
	case errors.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

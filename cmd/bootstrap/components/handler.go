package components

import (
	"coupon-service/internal/handler"
	"coupon-service/internal/handler/api"
	"coupon-service/internal/handler/middleware"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(pool *pgxpool.Pool) api.Pinger { return pool },
		api.NewHealthHandler,
		api.NewAuthHandler,
		api.NewCouponHandler,
		api.NewAdminCouponHandler,
		api.NewCampaignHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	health *api.HealthHandler,
	auth *api.AuthHandler,
	coupons *api.CouponHandler,
	adminCoupons *api.AdminCouponHandler,
	campaigns *api.CampaignHandler,
) handler.Handlers {
	return handler.Handlers{
		Health:      health,
		Auth:        auth,
		Coupon:      coupons,
		AdminCoupon: adminCoupons,
		Campaign:    campaigns,
	}
}

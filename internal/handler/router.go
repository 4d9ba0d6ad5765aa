package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/handler/api"
	"coupon-service/internal/handler/middleware"
	"coupon-service/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health      *api.HealthHandler
	Auth        *api.AuthHandler
	Coupon      *api.CouponHandler
	AdminCoupon *api.AdminCouponHandler
	Campaign    *api.CampaignHandler
}

// route is one endpoint; mw runs before handler, after the group's middleware.
type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
	mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, auth *middleware.AuthMiddleware) {
	// recovery is outermost so a panic in any later middleware is answered
	engine.Use(
		middleware.CustomRecovery(),
		middleware.NewCORSMiddleware(cfg.CORS),
		middleware.LoggingMiddleware(logger),
		middleware.ErrorHandler(),
	)

	mount(engine.Group("/health"), []route{
		{method: http.MethodGet, path: "", handler: h.Health.Live},
		{method: http.MethodGet, path: "/ready", handler: h.Health.Ready},
	})
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")

	requireAuth := []gin.HandlerFunc{auth.RequireAuth()}
	mount(apiGroup.Group("/auth"), []route{
		{method: http.MethodPost, path: "/login", handler: h.Auth.Login},
		{method: http.MethodPost, path: "/logout", handler: h.Auth.Logout, mw: requireAuth},
		{method: http.MethodGet, path: "/me", handler: h.Auth.Me, mw: requireAuth},
	})

	mount(apiGroup.Group("/coupons", auth.OptionalAuth()), []route{
		{method: http.MethodGet, path: "/details", handler: h.Coupon.Details},
		{method: http.MethodPost, path: "/validate", handler: h.Coupon.Validate},
		{method: http.MethodPost, path: "/redeem", handler: h.Coupon.Redeem},
	})

	mount(apiGroup.Group("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin)), []route{
		{method: http.MethodGet, path: "/coupons", handler: h.AdminCoupon.List},
		{method: http.MethodPost, path: "/coupons", handler: h.AdminCoupon.Create},
		{method: http.MethodPost, path: "/coupons/generate", handler: h.AdminCoupon.Generate},
		{method: http.MethodGet, path: "/coupons/:id", handler: h.AdminCoupon.Get},
		{method: http.MethodPatch, path: "/coupons/:id", handler: h.AdminCoupon.Update},
		{method: http.MethodPost, path: "/coupons/:id/users", handler: h.AdminCoupon.BindUser},
		{method: http.MethodGet, path: "/campaigns", handler: h.Campaign.List},
		{method: http.MethodPost, path: "/campaigns", handler: h.Campaign.Create},
	})
}

func mount(g *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		chain := append(slices.Clone(r.mw), r.handler)
		g.Handle(r.method, r.path, chain...)
	}
}

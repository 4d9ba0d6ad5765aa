package bootstrap

import (
	"fmt"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/jwt"

	"go.uber.org/fx"
)

// HS256 keys shorter than this are refused at startup.
const minJWTSecretLen = 16

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	if len(cfg.JWT.Secret) < minJWTSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLen)
	}
	if cfg.JWT.Duration <= 0 {
		return nil, fmt.Errorf("JWT_DURATION must be positive, got %s", cfg.JWT.Duration)
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration), nil
}

package bootstrap

import (
	"coupon-service/cmd/bootstrap/components"
	"coupon-service/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)

// Module is the full application graph. Tests swap ConfigModule and DBModule for
// their own providers.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	AdminModule,
)

package bootstrap

import (
	"log/slog"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger writes JSON in release mode and text otherwise.
func NewLogger(cfg config.Config) *slog.Logger {
	format := logger.FormatText
	if gin.Mode() == gin.ReleaseMode {
		format = logger.FormatJSON
	}
	return logger.New(cfg.Log, format)
}

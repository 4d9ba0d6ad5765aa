package bootstrap

import (
	"context"
	"log/slog"

	"coupon-service/internal/infra/db"
	"coupon-service/internal/pkg/config"
	"coupon-service/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// NewDB migrates first when DB_AUTO_MIGRATE is set, so handlers never see an
// outdated schema.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.DB.AutoMigrate {
		if err := db.Migrate(cfg.DB, migrations.FS); err != nil {
			return nil, err
		}
	} else {
		logger.Info("automatic migration disabled")
	}

	pool, closePool, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "host", cfg.DB.Host, "database", cfg.DB.DBName, "max_conns", cfg.DB.MaxConns)

	lc.Append(fx.StopHook(closePool))
	return pool, nil
}

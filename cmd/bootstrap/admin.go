package bootstrap

import (
	"context"
	"log/slog"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/usecase/commands"

	"go.uber.org/fx"
)

var AdminModule = fx.Module("admin",
	fx.Invoke(ProvisionAdmin),
)

// ProvisionAdmin creates the configured admin account on start. It is a no-op
// unless ADMIN_EMAIL and ADMIN_PASSWORD are set.
func ProvisionAdmin(lc fx.Lifecycle, cfg config.Config, cmds commands.AuthCommands, logger *slog.Logger) {
	if !cfg.Admin.Enabled() {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := cmds.ProvisionAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.PasswordCost)
			if err != nil {
				return err
			}
			logger.Info("admin account ready", "email", cfg.Admin.Email, "created", created)
			return nil
		},
	})
}

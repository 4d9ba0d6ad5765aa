package components

import (
	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/jwt"
	"coupon-service/internal/usecase"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
	"coupon-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewSystem,
	fx.Annotate(
		NewCodeGenerator,
		fx.As(new(commands.CodeGenerator)),
	),
	fx.Annotate(
		coupon.NewEvaluator,
		fx.As(new(queries.CouponEvaluator)),
	),
	func(s *jwt.Service) commands.TokenIssuer { return s },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCampaignCommands,
		NewCouponCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCouponQueries,
		queries.NewCampaignQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCodeGenerator(cfg config.Config) (*coupon.Generator, error) {
	return coupon.NewGenerator(coupon.GeneratorConfig{
		Length:        cfg.Coupon.CodeLength,
		Chars:         cfg.Coupon.CodeChars,
		Segmented:     cfg.Coupon.SegmentedCodes,
		SegmentLength: cfg.Coupon.SegmentLength,
		Separator:     cfg.Coupon.SegmentSeparator,
	})
}

func NewCouponCommands(uow shared.UnitOfWork, generator commands.CodeGenerator, clk clock.Clock, cfg config.Config) commands.CouponCommands {
	return commands.NewCouponCommands(uow, generator, clk, cfg.Coupon.MaxGenerate)
}

package components

import (
	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra/readstore"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/infra/uow"
	"coupon-service/internal/usecase/queries"
	"coupon-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
	),
	readstoreModule,
	repositoryModule,
)

// sqlcAs exposes the shared *sqlc.Queries as one consumer's narrow interface.
func sqlcAs[T any]() any {
	return fx.Annotate(func(q *sqlc.Queries) *sqlc.Queries { return q }, fx.As(new(T)))
}

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		sqlcAs[readstore.CouponReadQueries](),
		sqlcAs[readstore.CampaignReadQueries](),
		sqlcAs[readstore.UserReadQueries](),
		fx.Annotate(readstore.NewCouponReadStore, fx.As(new(queries.CouponReadStore))),
		fx.Annotate(readstore.NewCampaignReadStore, fx.As(new(queries.CampaignReadStore))),
		fx.Annotate(readstore.NewUserReadStore, fx.As(new(queries.UserReadStore))),
	),
)

// repositoryModule binds pool-backed repositories for the evaluator, which
// reads outside a unit of work. Writes go through shared.Tx.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(uow.NewPostgresUoW, fx.As(new(shared.UnitOfWork))),
		sqlcAs[repository.CouponQueries](),
		sqlcAs[repository.ConsumptionQueries](),
		fx.Annotate(repository.NewCouponRepository, fx.As(new(coupon.CouponFinder))),
		fx.Annotate(repository.NewConsumptionRepository, fx.As(new(coupon.ConsumptionReader))),
	),
)

// NewSQLQueries takes the pool only so queries are built after the database is up.
func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

package repository

import (
	"context"
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/repository/converter"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ConsumptionQueries interface {
	GetCouponUser(ctx context.Context, db sqlc.DBTX, couponID, userID uuid.UUID) (sqlc.CouponUsers, error)
	CountCouponUsers(ctx context.Context, db sqlc.DBTX, arg sqlc.CountCouponUsersParams) (int64, error)
	CreateCouponUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCouponUserParams) (sqlc.CouponUsers, error)
	MarkCouponUserRedeemed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkCouponUserRedeemedParams) (sqlc.CouponUsers, error)
}

// ConsumptionRepository persists coupon_users records.
type ConsumptionRepository struct {
	queries ConsumptionQueries
	db      sqlc.DBTX
}

func NewConsumptionRepository(queries ConsumptionQueries, db sqlc.DBTX) *ConsumptionRepository {
	return &ConsumptionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ConsumptionRepository) FindConsumption(ctx context.Context, couponID, userID uuid.UUID) (*coupon.Consumption, error) {
	row, err := r.queries.GetCouponUser(ctx, r.db, couponID, userID)
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to find coupon consumption", err)
		if infra.IsKind(wrapped, infra.KindNotFound) {
			return nil, errs.Mark(wrapped, coupon.ErrConsumptionNotFound)
		}
		return nil, wrapped
	}
	return converter.ConsumptionFromRow(row), nil
}

func (r *ConsumptionRepository) CountConsumptions(ctx context.Context, couponID uuid.UUID, filter coupon.ConsumptionFilter) (int, error) {
	count, err := r.queries.CountCouponUsers(ctx, r.db, sqlc.CountCouponUsersParams{
		CouponID:  couponID,
		UserBound: filter.UserBound,
		Redeemed:  filter.Redeemed,
		Code:      pgconv.StringPtrToPgtype(filter.Code),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon consumptions", err)
	}
	return int(count), nil
}

func (r *ConsumptionRepository) Create(ctx context.Context, rec *coupon.Consumption) (*coupon.Consumption, error) {
	row, err := r.queries.CreateCouponUser(ctx, r.db, converter.ConsumptionToCreateParams(rec))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create coupon consumption", err)
	}
	return converter.ConsumptionFromRow(row), nil
}

// MarkRedeemed stamps an unredeemed record. A record redeemed in the meantime
// surfaces as KindConflict.
func (r *ConsumptionRepository) MarkRedeemed(ctx context.Context, id uuid.UUID, redeemedAt time.Time, code *string) (*coupon.Consumption, error) {
	row, err := r.queries.MarkCouponUserRedeemed(ctx, r.db, sqlc.MarkCouponUserRedeemedParams{
		ID:         id,
		RedeemedAt: pgconv.TimeToPgtype(redeemedAt),
		Code:       pgconv.StringPtrToPgtype(code),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon consumption already redeemed", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to mark coupon consumption redeemed", err)
	}
	return converter.ConsumptionFromRow(row), nil
}

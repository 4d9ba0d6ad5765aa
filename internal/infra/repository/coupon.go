package repository

import (
	"context"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/repository/converter"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CouponQueries interface {
	GetCouponByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error)
	GetCouponBySubCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error)
	GetCouponByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Coupons, error)
	LockCouponByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Coupons, error)
	CreateCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCouponParams) (sqlc.Coupons, error)
	UpdateCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateCouponParams) (sqlc.Coupons, error)
	UpsertProduct(ctx context.Context, db sqlc.DBTX, name string) (uuid.UUID, error)
	AddCouponProduct(ctx context.Context, db sqlc.DBTX, couponID, productID uuid.UUID) error
	ListCouponProductNames(ctx context.Context, db sqlc.DBTX, couponID uuid.UUID) ([]string, error)
}

type CouponRepository struct {
	queries CouponQueries
	db      sqlc.DBTX
}

func NewCouponRepository(queries CouponQueries, db sqlc.DBTX) *CouponRepository {
	return &CouponRepository{
		queries: queries,
		db:      db,
	}
}

// FindByCode matches the coupon code first, then a bulk sub-code.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	row, err := r.queries.GetCouponByCode(ctx, r.db, code)
	if pgconv.IsNoRows(err) {
		row, err = r.queries.GetCouponBySubCode(ctx, r.db, code)
	}
	if err != nil {
		return nil, r.notFoundOr(err, "failed to find coupon by code")
	}
	return r.hydrate(ctx, row)
}

func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	row, err := r.queries.GetCouponByID(ctx, r.db, id)
	if err != nil {
		return nil, r.notFoundOr(err, "failed to find coupon by ID")
	}
	return r.hydrate(ctx, row)
}

func (r *CouponRepository) LockByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	row, err := r.queries.LockCouponByID(ctx, r.db, id)
	if err != nil {
		return nil, r.notFoundOr(err, "failed to lock coupon")
	}
	return r.hydrate(ctx, row)
}

// Create inserts the coupon and its products. A taken code is reported as
// KindDuplicateKey and leaves the surrounding transaction usable.
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error) {
	row, err := r.queries.CreateCoupon(ctx, r.db, converter.CouponToCreateParams(c))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon code already exists", err, infra.KindDuplicateKey)
		}
		return nil, infra.WrapRepoErr("failed to create coupon", err)
	}

	for _, name := range c.ValidProducts() {
		productID, err := r.queries.UpsertProduct(ctx, r.db, name)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to upsert product", err)
		}
		if err := r.queries.AddCouponProduct(ctx, r.db, row.ID, productID); err != nil {
			return nil, infra.WrapRepoErr("failed to attach product to coupon", err)
		}
	}

	created, err := converter.CouponFromRow(row, c.ValidProducts())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err, infra.KindDBFailure)
	}
	return created, nil
}

func (r *CouponRepository) Update(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error) {
	row, err := r.queries.UpdateCoupon(ctx, r.db, converter.CouponToUpdateParams(c))
	if err != nil {
		return nil, r.notFoundOr(err, "failed to update coupon")
	}

	updated, err := converter.CouponFromRow(row, c.ValidProducts())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err, infra.KindDBFailure)
	}
	return updated, nil
}

func (r *CouponRepository) hydrate(ctx context.Context, row sqlc.Coupons) (*coupon.Coupon, error) {
	products, err := r.queries.ListCouponProductNames(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupon products", err)
	}

	c, err := converter.CouponFromRow(row, products)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err, infra.KindDBFailure)
	}
	return c, nil
}

func (r *CouponRepository) notFoundOr(err error, msg string) error {
	wrapped := infra.WrapRepoErr(msg, err)
	if infra.IsKind(wrapped, infra.KindNotFound) {
		return errs.Mark(wrapped, coupon.ErrCouponNotFound)
	}
	return wrapped
}

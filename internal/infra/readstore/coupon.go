package readstore

import (
	"context"
	"time"

	"coupon-service/internal/infra"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponReadQueries interface {
	GetCouponByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Coupons, error)
	ListCoupons(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCouponsParams) ([]sqlc.ListCouponsRow, error)
	ListCouponProductNames(ctx context.Context, db sqlc.DBTX, couponID uuid.UUID) ([]string, error)
	ListCouponUsersByCoupon(ctx context.Context, db sqlc.DBTX, couponID uuid.UUID) ([]sqlc.ListCouponUsersByCouponRow, error)
}

type CouponReadStore struct {
	queries CouponReadQueries
	db      sqlc.DBTX
}

func NewCouponReadStore(queries CouponReadQueries, db sqlc.DBTX) *CouponReadStore {
	return &CouponReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CouponReadStore) List(ctx context.Context, filters queries.CouponFilters, lastCreatedAt *time.Time, lastID *uuid.UUID, limit int32) ([]*queries.CouponListItem, error) {
	rows, err := r.queries.ListCoupons(ctx, r.db, sqlc.ListCouponsParams{
		Type:          pgconv.StringPtrToPgtype(filters.Type),
		CampaignID:    pgconv.UUIDPtrToPgtype(filters.CampaignID),
		Search:        pgconv.StringPtrToPgtype(filters.Search),
		LastCreatedAt: pgconv.TimePtrToPgtype(lastCreatedAt),
		LastID:        pgconv.UUIDPtrToPgtype(lastID),
		Limit:         limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}

	items := make([]*queries.CouponListItem, 0, len(rows))
	for _, row := range rows {
		item, err := toCouponListItem(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert coupon row", err, infra.KindDBFailure)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CouponDetailView, error) {
	row, err := r.queries.GetCouponByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}

	products, err := r.queries.ListCouponProductNames(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupon products", err)
	}

	users, err := r.queries.ListCouponUsersByCoupon(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupon consumptions", err)
	}

	value, err := pgconv.DecimalFromNumeric(row.Value)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon value", err, infra.KindDBFailure)
	}

	view := &queries.CouponDetailView{
		CouponListItem: queries.CouponListItem{
			ID:         row.ID,
			Code:       row.Code,
			Type:       row.Type,
			Value:      value,
			UserLimit:  int(row.UserLimit),
			Bulk:       row.Bulk,
			BulkNumber: int(row.BulkNumber),
			ValidUntil: pgconv.TimePtrFromPgtype(row.ValidUntil),
			Active:     row.Active,
			CampaignID: pgconv.UUIDPtrFromPgtype(row.CampaignID),
			CreatedAt:  row.CreatedAt.Time,
		},
		ValidProducts: products,
		Consumptions:  make([]*queries.ConsumptionView, 0, len(users)),
	}

	for _, u := range users {
		cv := &queries.ConsumptionView{
			ID:         u.ID,
			UserID:     pgconv.UUIDPtrFromPgtype(u.UserID),
			UserEmail:  pgconv.StringPtrFromPgtype(u.UserEmail),
			Code:       pgconv.StringPtrFromPgtype(u.Code),
			RedeemedAt: pgconv.TimePtrFromPgtype(u.RedeemedAt),
			CreatedAt:  u.CreatedAt.Time,
		}
		view.UserCount++
		if cv.RedeemedAt != nil {
			view.RedeemedCount++
		}
		view.Consumptions = append(view.Consumptions, cv)
	}

	return view, nil
}

func toCouponListItem(row sqlc.ListCouponsRow) (*queries.CouponListItem, error) {
	value, err := pgconv.DecimalFromNumeric(row.Value)
	if err != nil {
		return nil, err
	}

	return &queries.CouponListItem{
		ID:            row.ID,
		Code:          row.Code,
		Type:          row.Type,
		Value:         value,
		UserLimit:     int(row.UserLimit),
		Bulk:          row.Bulk,
		BulkNumber:    int(row.BulkNumber),
		ValidUntil:    pgconv.TimePtrFromPgtype(row.ValidUntil),
		Active:        row.Active,
		CampaignID:    pgconv.UUIDPtrFromPgtype(row.CampaignID),
		CampaignName:  pgconv.StringPtrFromPgtype(row.CampaignName),
		UserCount:     int(row.UserCount),
		RedeemedCount: int(row.RedeemedCount),
		CreatedAt:     row.CreatedAt.Time,
	}, nil
}

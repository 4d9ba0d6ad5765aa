package converter

import (
	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"
)

func CouponFromRow(row sqlc.Coupons, products []string) (*coupon.Coupon, error) {
	value, err := pgconv.DecimalFromNumeric(row.Value)
	if err != nil {
		return nil, err
	}

	return coupon.Rehydrate(coupon.Params{
		ID:            row.ID,
		Code:          row.Code,
		Type:          row.Type,
		Value:         value,
		UserLimit:     int(row.UserLimit),
		Bulk:          row.Bulk,
		BulkNumber:    int(row.BulkNumber),
		ValidUntil:    pgconv.TimePtrFromPgtype(row.ValidUntil),
		Active:        row.Active,
		ValidProducts: products,
		CampaignID:    pgconv.UUIDPtrFromPgtype(row.CampaignID),
		CreatedAt:     row.CreatedAt.Time,
	}), nil
}

func CouponToCreateParams(c *coupon.Coupon) sqlc.CreateCouponParams {
	return sqlc.CreateCouponParams{
		ID:         c.ID(),
		Code:       c.Code().String(),
		Type:       c.Type().String(),
		Value:      pgconv.DecimalToNumeric(c.Value()),
		UserLimit:  pgconv.IntToInt32(c.UserLimit()),
		Bulk:       c.Bulk(),
		BulkNumber: pgconv.IntToInt32(c.BulkNumber()),
		ValidUntil: pgconv.TimePtrToPgtype(c.ValidUntil()),
		Active:     c.Active(),
		CampaignID: pgconv.UUIDPtrToPgtype(c.CampaignID()),
	}
}

func CouponToUpdateParams(c *coupon.Coupon) sqlc.UpdateCouponParams {
	return sqlc.UpdateCouponParams{
		ID:         c.ID(),
		Active:     c.Active(),
		ValidUntil: pgconv.TimePtrToPgtype(c.ValidUntil()),
		UserLimit:  pgconv.IntToInt32(c.UserLimit()),
	}
}

func ConsumptionFromRow(row sqlc.CouponUsers) *coupon.Consumption {
	return &coupon.Consumption{
		ID:         row.ID,
		CouponID:   row.CouponID,
		UserID:     pgconv.UUIDPtrFromPgtype(row.UserID),
		Code:       pgconv.StringPtrFromPgtype(row.Code),
		RedeemedAt: pgconv.TimePtrFromPgtype(row.RedeemedAt),
		CreatedAt:  row.CreatedAt.Time,
	}
}

func ConsumptionToCreateParams(rec *coupon.Consumption) sqlc.CreateCouponUserParams {
	return sqlc.CreateCouponUserParams{
		CouponID:   rec.CouponID,
		UserID:     pgconv.UUIDPtrToPgtype(rec.UserID),
		Code:       pgconv.StringPtrToPgtype(rec.Code),
		RedeemedAt: pgconv.TimePtrToPgtype(rec.RedeemedAt),
	}
}

func CampaignFromRow(row sqlc.Campaigns) *campaign.Campaign {
	return campaign.Rehydrate(row.ID, row.Name, row.Description, row.CreatedAt.Time)
}

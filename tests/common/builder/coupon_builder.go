//go:build unit || e2e

package builder

import (
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	ID            uuid.UUID
	Code          string
	Type          string
	Value         decimal.Decimal
	UserLimit     int
	Bulk          bool
	BulkNumber    int
	ValidUntil    *time.Time
	Active        bool
	ValidProducts []string
	CampaignID    *uuid.UUID
	CreatedAt     time.Time
}

// NewCouponBuilder starts from SAVE10: monetary 10, unlimited, active, no expiry.
func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:        uuid.New(),
		Code:      "SAVE10",
		Type:      string(coupon.TypeMonetary),
		Value:     decimal.NewFromInt(10),
		UserLimit: 0,
		Active:    true,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) Params() coupon.Params {
	return coupon.Params{
		ID:            b.ID,
		Code:          b.Code,
		Type:          b.Type,
		Value:         b.Value,
		UserLimit:     b.UserLimit,
		Bulk:          b.Bulk,
		BulkNumber:    b.BulkNumber,
		ValidUntil:    b.ValidUntil,
		Active:        b.Active,
		ValidProducts: b.ValidProducts,
		CampaignID:    b.CampaignID,
		CreatedAt:     b.CreatedAt,
	}
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(b.Params())
}

// MustBuild panics on invalid input; tests use it for fixtures known to be valid.
func (b *CouponBuilder) MustBuild() *coupon.Coupon {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}

func (b *CouponBuilder) BuildListItem() *queries.CouponListItem {
	return &queries.CouponListItem{
		ID:         b.ID,
		Code:       b.Code,
		Type:       b.Type,
		Value:      b.Value,
		UserLimit:  b.UserLimit,
		Bulk:       b.Bulk,
		BulkNumber: b.BulkNumber,
		ValidUntil: b.ValidUntil,
		Active:     b.Active,
		CampaignID: b.CampaignID,
		CreatedAt:  b.CreatedAt,
	}
}

// Fluent builder methods
func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithType(t coupon.Type) *CouponBuilder {
	b.Type = string(t)
	return b
}

func (b *CouponBuilder) WithValue(v int64) *CouponBuilder {
	b.Value = decimal.NewFromInt(v)
	return b
}

func (b *CouponBuilder) WithUserLimit(n int) *CouponBuilder {
	b.UserLimit = n
	return b
}

func (b *CouponBuilder) AsBulk(number int) *CouponBuilder {
	b.Bulk = true
	b.BulkNumber = number
	return b
}

func (b *CouponBuilder) ExpiringAt(t time.Time) *CouponBuilder {
	b.ValidUntil = &t
	return b
}

func (b *CouponBuilder) AsInactive() *CouponBuilder {
	b.Active = false
	return b
}

func (b *CouponBuilder) WithProducts(names ...string) *CouponBuilder {
	b.ValidProducts = names
	return b
}

func (b *CouponBuilder) InCampaign(id uuid.UUID) *CouponBuilder {
	b.CampaignID = &id
	return b
}

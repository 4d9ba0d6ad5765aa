package request

import (
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponCodeRequest is the shared shape of the details, validate and redeem calls.
// Types and Products are comma-delimited; blank means no restriction.
type CouponCodeRequest struct {
	Code     string `json:"code" form:"code"`
	Types    string `json:"types" form:"types"`
	Products string `json:"products" form:"products"`
}

func (r *CouponCodeRequest) ToInput(userID *uuid.UUID) coupon.Input {
	return coupon.Input{
		Code:            r.Code,
		UserID:          userID,
		AllowedTypes:    coupon.ParseTypes(r.Types),
		AllowedProducts: coupon.ParseNames(r.Products),
	}
}

type CreateCouponRequest struct {
	Code          string          `json:"code" binding:"required,max=255"`
	Type          string          `json:"type" binding:"required,oneof=monetary percentage virtual_currency"`
	Value         decimal.Decimal `json:"value"`
	UserLimit     *int            `json:"user_limit" binding:"omitempty,min=0"`
	Bulk          bool            `json:"bulk"`
	BulkNumber    int             `json:"bulk_number" binding:"min=0"`
	ValidUntil    *time.Time      `json:"valid_until"`
	Active        *bool           `json:"active"`
	ValidProducts []string        `json:"valid_products"`
	CampaignID    *uuid.UUID      `json:"campaign_id"`
}

type GenerateCouponsRequest struct {
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	Type       string          `json:"type" binding:"required,oneof=monetary percentage virtual_currency"`
	Value      decimal.Decimal `json:"value"`
	ValidUntil *time.Time      `json:"valid_until"`
	Prefix     string          `json:"prefix" binding:"max=64"`
	CampaignID *uuid.UUID      `json:"campaign_id"`
}

type UpdateCouponRequest struct {
	Active          *bool      `json:"active"`
	ValidUntil      *time.Time `json:"valid_until"`
	ClearValidUntil bool       `json:"clear_valid_until"`
	UserLimit       *int       `json:"user_limit" binding:"omitempty,min=0"`
}

type BindUserRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type ListCouponsQuery struct {
	Type       string `form:"type"`
	CampaignID string `form:"campaign_id"`
	Search     string `form:"q"`
	Limit      int    `form:"limit"`
	After      string `form:"after"`
}

func (q *ListCouponsQuery) ToFilters() (queries.CouponFilters, error) {
	var f queries.CouponFilters
	if q.Type != "" {
		f.Type = &q.Type
	}
	if q.Search != "" {
		f.Search = &q.Search
	}
	if q.CampaignID != "" {
		id, err := uuid.Parse(q.CampaignID)
		if err != nil {
			return f, err
		}
		f.CampaignID = &id
	}
	return f, nil
}

func (q *ListCouponsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

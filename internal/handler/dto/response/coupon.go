package response

import (
	"encoding/json"
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// CouponDetailsResponse is the legacy details payload. Exactly one of the two
// shapes is populated. Value is a bare JSON number, unlike the admin payloads.
type CouponDetailsResponse struct {
	Code   string      `json:"code,omitempty"`
	Value  json.Number `json:"value,omitempty" swaggertype:"number"`
	Type   string      `json:"type,omitempty"`
	Err    string      `json:"err,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

func FromCouponDetails(d *queries.CouponDetails) *CouponDetailsResponse {
	return &CouponDetailsResponse{
		Code:  d.Code,
		Value: json.Number(d.Value.String()),
		Type:  d.Type,
	}
}

func FromRejection(rej *coupon.Rejection) *CouponDetailsResponse {
	return &CouponDetailsResponse{
		Err:    rej.Error(),
		Reason: rej.Reason.String(),
	}
}

// RejectionDetail goes into the error envelope's detail for 422 responses.
type RejectionDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type CouponSummaryResponse struct {
	ID      uuid.UUID       `json:"id"`
	Code    string          `json:"code"`
	Type    string          `json:"type"`
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

type ValidateCouponResponse struct {
	Valid  bool                   `json:"valid"`
	Coupon *CouponSummaryResponse `json:"coupon"`
}

func FromEvaluation(res *queries.EvaluationResult) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		Valid: true,
		Coupon: &CouponSummaryResponse{
			ID:      res.CouponID,
			Code:    res.Code,
			Type:    res.Type,
			Value:   res.Value,
			Display: res.Display,
		},
	}
}

type RedemptionResponse struct {
	CouponID      uuid.UUID       `json:"coupon_id"`
	ConsumptionID uuid.UUID       `json:"consumption_id"`
	Code          string          `json:"code"`
	SubCode       *string         `json:"sub_code,omitempty"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	Display       string          `json:"display"`
	RedeemedAt    time.Time       `json:"redeemed_at"`
}

func FromRedemption(r *commands.Redemption) *RedemptionResponse {
	var res RedemptionResponse
	_ = copier.Copy(&res, r)
	return &res
}

type CouponResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	Display       string          `json:"display"`
	UserLimit     int             `json:"user_limit"`
	Bulk          bool            `json:"bulk"`
	BulkNumber    int             `json:"bulk_number"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Active        bool            `json:"active"`
	ValidProducts []string        `json:"valid_products"`
	CampaignID    *uuid.UUID      `json:"campaign_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func FromCoupon(c *coupon.Coupon) *CouponResponse {
	products := c.ValidProducts()
	if products == nil {
		products = []string{}
	}
	return &CouponResponse{
		ID:            c.ID(),
		Code:          c.Code().String(),
		Type:          c.Type().String(),
		Value:         c.Value(),
		Display:       c.Display(),
		UserLimit:     c.UserLimit(),
		Bulk:          c.Bulk(),
		BulkNumber:    c.BulkNumber(),
		ValidUntil:    c.ValidUntil(),
		Active:        c.Active(),
		ValidProducts: products,
		CampaignID:    c.CampaignID(),
		CreatedAt:     c.CreatedAt(),
	}
}

func FromCoupons(cs []*coupon.Coupon) []*CouponResponse {
	res := make([]*CouponResponse, len(cs))
	for i, c := range cs {
		res[i] = FromCoupon(c)
	}
	return res
}

type CouponListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	Display       string          `json:"display"`
	UserLimit     int             `json:"user_limit"`
	Bulk          bool            `json:"bulk"`
	BulkNumber    int             `json:"bulk_number"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Active        bool            `json:"active"`
	CampaignID    *uuid.UUID      `json:"campaign_id,omitempty"`
	CampaignName  *string         `json:"campaign_name,omitempty"`
	UserCount     int             `json:"user_count"`
	RedeemedCount int             `json:"redeemed_count"`
	IsRedeemed    bool            `json:"is_redeemed"`
	CreatedAt     time.Time       `json:"created_at"`
}

func FromCouponListItem(it *queries.CouponListItem) *CouponListItemResponse {
	var res CouponListItemResponse
	_ = copier.Copy(&res, it)
	res.Display = coupon.DisplayValue(coupon.Type(it.Type), it.Value)
	res.IsRedeemed = it.IsRedeemed()
	return &res
}

type CouponListResponse struct {
	Items      []*CouponListItemResponse `json:"items"`
	NextCursor *string                   `json:"next_cursor,omitempty"`
}

func FromCouponList(items []*queries.CouponListItem, next *queries.Cursor) *CouponListResponse {
	res := &CouponListResponse{Items: make([]*CouponListItemResponse, len(items))}
	for i, it := range items {
		res.Items[i] = FromCouponListItem(it)
	}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}

type ConsumptionResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	UserEmail  *string    `json:"user_email,omitempty"`
	Code       *string    `json:"code,omitempty"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromConsumption(c *coupon.Consumption) *ConsumptionResponse {
	var res ConsumptionResponse
	_ = copier.Copy(&res, c)
	return &res
}

type CouponDetailResponse struct {
	CouponListItemResponse
	ValidProducts []string               `json:"valid_products"`
	Consumptions  []*ConsumptionResponse `json:"consumptions"`
}

func FromCouponDetailView(v *queries.CouponDetailView) *CouponDetailResponse {
	res := &CouponDetailResponse{
		CouponListItemResponse: *FromCouponListItem(&v.CouponListItem),
		ValidProducts:          v.ValidProducts,
		Consumptions:           make([]*ConsumptionResponse, 0, len(v.Consumptions)),
	}
	if res.ValidProducts == nil {
		res.ValidProducts = []string{}
	}
	for _, cv := range v.Consumptions {
		var item ConsumptionResponse
		_ = copier.Copy(&item, cv)
		res.Consumptions = append(res.Consumptions, &item)
	}
	return res
}

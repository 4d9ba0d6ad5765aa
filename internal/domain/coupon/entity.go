package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidUserLimit  = errors.New("user limit cannot be negative")
	ErrInvalidBulkNumber = errors.New("bulk coupons need a positive bulk number")
)

type Coupon struct {
	id            uuid.UUID
	code          Code
	couponType    Type
	value         decimal.Decimal
	userLimit     int
	bulk          bool
	bulkNumber    int
	validUntil    *time.Time
	active        bool
	validProducts []string
	campaignID    *uuid.UUID
	createdAt     time.Time
}

// Params carries every persisted attribute; used both for creation and rehydration.
type Params struct {
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

func NewCoupon(p Params) (*Coupon, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}

	couponType, err := NewType(p.Type)
	if err != nil {
		return nil, err
	}

	if err := validateValue(couponType, p.Value); err != nil {
		return nil, err
	}

	if p.UserLimit < 0 {
		return nil, ErrInvalidUserLimit
	}
	if p.Bulk && p.BulkNumber <= 0 {
		return nil, ErrInvalidBulkNumber
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Coupon{
		id:            id,
		code:          code,
		couponType:    couponType,
		value:         p.Value,
		userLimit:     p.UserLimit,
		bulk:          p.Bulk,
		bulkNumber:    p.BulkNumber,
		validUntil:    p.ValidUntil,
		active:        p.Active,
		validProducts: p.ValidProducts,
		campaignID:    p.CampaignID,
		createdAt:     p.CreatedAt,
	}, nil
}

// Rehydrate rebuilds a stored coupon without re-running creation rules, so rows
// written before a rule tightened still load.
func Rehydrate(p Params) *Coupon {
	return &Coupon{
		id:            p.ID,
		code:          Code(p.Code),
		couponType:    Type(p.Type),
		value:         p.Value,
		userLimit:     p.UserLimit,
		bulk:          p.Bulk,
		bulkNumber:    p.BulkNumber,
		validUntil:    p.ValidUntil,
		active:        p.Active,
		validProducts: p.ValidProducts,
		campaignID:    p.CampaignID,
		createdAt:     p.CreatedAt,
	}
}

// IsUnlimited reports the zero sentinel: no bound on consumption records.
func (c *Coupon) IsUnlimited() bool {
	return c.userLimit == 0
}

// AllowsAnonymous is true when reuse cannot happen without per-user tracking.
func (c *Coupon) AllowsAnonymous() bool {
	return c.userLimit <= 1
}

// IsRedeemed reports aggregate exhaustion. Unlimited coupons are never exhausted by count.
func (c *Coupon) IsRedeemed(redeemedCount int) bool {
	return !c.IsUnlimited() && redeemedCount >= c.userLimit
}

func (c *Coupon) IsExpired(now time.Time) bool {
	return c.validUntil != nil && c.validUntil.Before(now)
}

func (c *Coupon) AcceptsType(allowed []Type) bool {
	if allowed == nil {
		return true
	}
	for _, t := range allowed {
		if t == c.couponType {
			return true
		}
	}
	return false
}

// AppliesToProducts intersects the coupon's products with the requested ones by name.
// A coupon without product restrictions, or a request without products, always applies.
func (c *Coupon) AppliesToProducts(products []string) bool {
	if products == nil || len(c.validProducts) == 0 {
		return true
	}
	requested := make(map[string]struct{}, len(products))
	for _, p := range products {
		requested[p] = struct{}{}
	}
	for _, name := range c.validProducts {
		if _, ok := requested[name]; ok {
			return true
		}
	}
	return false
}

// Params returns the coupon's attributes; NewCoupon(c.Params()) yields an equal coupon.
func (c *Coupon) Params() Params {
	return Params{
		ID:            c.id,
		Code:          c.code.String(),
		Type:          c.couponType.String(),
		Value:         c.value,
		UserLimit:     c.userLimit,
		Bulk:          c.bulk,
		BulkNumber:    c.bulkNumber,
		ValidUntil:    c.validUntil,
		Active:        c.active,
		ValidProducts: c.validProducts,
		CampaignID:    c.campaignID,
		CreatedAt:     c.createdAt,
	}
}

func (c *Coupon) Display() string {
	return DisplayValue(c.couponType, c.value)
}

func (c *Coupon) ID() uuid.UUID           { return c.id }
func (c *Coupon) Code() Code              { return c.code }
func (c *Coupon) Type() Type              { return c.couponType }
func (c *Coupon) Value() decimal.Decimal  { return c.value }
func (c *Coupon) UserLimit() int          { return c.userLimit }
func (c *Coupon) Bulk() bool              { return c.bulk }
func (c *Coupon) BulkNumber() int         { return c.bulkNumber }
func (c *Coupon) ValidUntil() *time.Time  { return c.validUntil }
func (c *Coupon) Active() bool            { return c.active }
func (c *Coupon) ValidProducts() []string { return c.validProducts }
func (c *Coupon) CampaignID() *uuid.UUID  { return c.campaignID }
func (c *Coupon) CreatedAt() time.Time    { return c.createdAt }

// Consumption is one claimed or redeemed unit of a coupon's capacity.
type Consumption struct {
	ID         uuid.UUID
	CouponID   uuid.UUID
	UserID     *uuid.UUID
	Code       *string
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

func (c *Consumption) IsRedeemed() bool {
	return c.RedeemedAt != nil
}

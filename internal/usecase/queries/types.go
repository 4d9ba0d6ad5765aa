package queries

import (
	"time"

	"coupon-service/internal/domain/campaign"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponListItem is one row of the admin coupon list.
type CouponListItem struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	UserLimit     int             `json:"user_limit"`
	Bulk          bool            `json:"bulk"`
	BulkNumber    int             `json:"bulk_number"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Active        bool            `json:"active"`
	CampaignID    *uuid.UUID      `json:"campaign_id,omitempty"`
	CampaignName  *string         `json:"campaign_name,omitempty"`
	UserCount     int             `json:"user_count"`
	RedeemedCount int             `json:"redeemed_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsRedeemed mirrors coupon.Coupon.IsRedeemed for list rows.
func (c *CouponListItem) IsRedeemed() bool {
	return c.UserLimit != 0 && c.RedeemedCount >= c.UserLimit
}

type CouponDetailView struct {
	CouponListItem
	ValidProducts []string           `json:"valid_products"`
	Consumptions  []*ConsumptionView `json:"consumptions"`
}

type ConsumptionView struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	UserEmail  *string    `json:"user_email,omitempty"`
	Code       *string    `json:"code,omitempty"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CouponFilters struct {
	Type       *string
	CampaignID *uuid.UUID
	Search     *string
}

type CampaignView struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	Stats       campaign.Stats `json:"stats"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// CurrentUserView is the signed-in user with their coupon activity.
type CurrentUserView struct {
	AuthorizedUserView
	LastLogin *time.Time `json:"last_login,omitempty"`
	// Redeemed counts consumption records with a redemption time, Pending the
	// records bound to the user but not yet used.
	Redeemed int `json:"redeemed_coupons"`
	Pending  int `json:"pending_coupons"`
}

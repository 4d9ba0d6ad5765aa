package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Campaigns struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type CouponUsers struct {
	ID         uuid.UUID          `json:"id"`
	CouponID   uuid.UUID          `json:"coupon_id"`
	UserID     pgtype.UUID        `json:"user_id"`
	Code       pgtype.Text        `json:"code"`
	RedeemedAt pgtype.Timestamptz `json:"redeemed_at"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

type Coupons struct {
	ID         uuid.UUID          `json:"id"`
	Code       string             `json:"code"`
	Type       string             `json:"type"`
	Value      pgtype.Numeric     `json:"value"`
	UserLimit  int32              `json:"user_limit"`
	Bulk       bool               `json:"bulk"`
	BulkNumber int32              `json:"bulk_number"`
	ValidUntil pgtype.Timestamptz `json:"valid_until"`
	Active     bool               `json:"active"`
	CampaignID pgtype.UUID        `json:"campaign_id"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type Products struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Users struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

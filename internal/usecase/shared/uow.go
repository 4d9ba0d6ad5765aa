package shared

import (
	"context"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. fn may be called again when the database
	// reports a serialization failure or deadlock, so it must not keep state
	// between calls.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Coupons() CouponRepository
	Consumptions() ConsumptionRepository
	Campaigns() CampaignRepository
	Users() UserRepository
}

type CouponRepository interface {
	coupon.CouponFinder
	FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
	// LockByID takes a row lock held until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
	Create(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error)
	Update(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error)
}

type ConsumptionRepository interface {
	coupon.ConsumptionReader
	Create(ctx context.Context, rec *coupon.Consumption) (*coupon.Consumption, error)
	MarkRedeemed(ctx context.Context, id uuid.UUID, redeemedAt time.Time, code *string) (*coupon.Consumption, error)
}

type CampaignRepository interface {
	Create(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

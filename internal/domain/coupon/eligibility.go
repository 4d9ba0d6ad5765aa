package coupon

import (
	"context"
	"errors"
	"strings"

	"coupon-service/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrConsumptionNotFound = errors.New("coupon consumption not found")
)

// CouponFinder resolves a code to its coupon. A bulk sub-code resolves to the parent.
// Returns an error matching ErrCouponNotFound when nothing matches.
type CouponFinder interface {
	FindByCode(ctx context.Context, code string) (*Coupon, error)
}

// ConsumptionFilter narrows CountConsumptions. Zero value counts every record.
type ConsumptionFilter struct {
	UserBound bool
	Redeemed  bool
	Code      *string
}

type ConsumptionReader interface {
	// FindConsumption returns an error matching ErrConsumptionNotFound when the user
	// holds no record for the coupon.
	FindConsumption(ctx context.Context, couponID, userID uuid.UUID) (*Consumption, error)
	CountConsumptions(ctx context.Context, couponID uuid.UUID, filter ConsumptionFilter) (int, error)
}

// Input is one eligibility question. Nil fields mean "no restriction":
// nil UserID is an anonymous caller, nil AllowedTypes accepts any type,
// nil AllowedProducts skips the product check.
type Input struct {
	Code            string
	UserID          *uuid.UUID
	AllowedTypes    []Type
	AllowedProducts []string
}

type Acceptance struct {
	Coupon *Coupon
	// Consumption is the caller's existing unredeemed record, if any.
	Consumption *Consumption
}

func (a *Acceptance) Code() string           { return a.Coupon.Code().String() }
func (a *Acceptance) Value() decimal.Decimal { return a.Coupon.Value() }
func (a *Acceptance) Type() Type             { return a.Coupon.Type() }

// Evaluator runs the ordered eligibility checks. It only reads; recording a
// redemption is the caller's job.
type Evaluator struct {
	coupons      CouponFinder
	consumptions ConsumptionReader
	clock        clock.Clock
}

func NewEvaluator(coupons CouponFinder, consumptions ConsumptionReader, clk clock.Clock) *Evaluator {
	return &Evaluator{
		coupons:      coupons,
		consumptions: consumptions,
		clock:        clk,
	}
}

// Evaluate returns an Acceptance, a *Rejection carrying the first failing check, or
// an infrastructure error. Check order is part of the contract.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (*Acceptance, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, reject(ReasonCodeRequired)
	}

	c, err := e.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrCouponNotFound) {
			return nil, reject(ReasonNotFound)
		}
		return nil, err
	}

	if in.UserID == nil && !c.AllowsAnonymous() {
		return nil, reject(ReasonUserContextRequired)
	}

	if !c.Active() {
		return nil, reject(ReasonInactive)
	}

	if !c.IsUnlimited() {
		redeemed, err := e.consumptions.CountConsumptions(ctx, c.ID(), ConsumptionFilter{Redeemed: true})
		if err != nil {
			return nil, err
		}
		if c.IsRedeemed(redeemed) {
			return nil, reject(ReasonAlreadyRedeemed)
		}
	}

	existing, err := e.checkConsumption(ctx, c, code, in.UserID)
	if err != nil {
		return nil, err
	}

	if !c.AcceptsType(in.AllowedTypes) {
		return nil, reject(ReasonNotApplicableHere)
	}

	if c.IsExpired(e.clock.Now()) {
		return nil, reject(ReasonExpired)
	}

	if !c.AppliesToProducts(in.AllowedProducts) {
		return nil, reject(ReasonNotApplicableToProduct)
	}

	return &Acceptance{Coupon: c, Consumption: existing}, nil
}

func (e *Evaluator) checkConsumption(ctx context.Context, c *Coupon, code string, userID *uuid.UUID) (*Consumption, error) {
	if userID != nil {
		rec, err := e.consumptions.FindConsumption(ctx, c.ID(), *userID)
		switch {
		case err == nil:
			if rec.IsRedeemed() {
				return nil, reject(ReasonAlreadyRedeemedByUser)
			}
			return rec, nil
		case errors.Is(err, ErrConsumptionNotFound):
		default:
			return nil, err
		}
	}

	if c.IsUnlimited() {
		return nil, nil
	}

	if !c.Bulk() {
		// only user bound records left and the caller holds none
		bound, err := e.consumptions.CountConsumptions(ctx, c.ID(), ConsumptionFilter{UserBound: true})
		if err != nil {
			return nil, err
		}
		if bound == c.UserLimit() {
			return nil, reject(ReasonNotValidForAccount)
		}

		redeemed, err := e.consumptions.CountConsumptions(ctx, c.ID(), ConsumptionFilter{Redeemed: true})
		if err != nil {
			return nil, err
		}
		if redeemed == c.UserLimit() {
			return nil, reject(ReasonAlreadyRedeemed)
		}
		return nil, nil
	}

	claimed, err := e.consumptions.CountConsumptions(ctx, c.ID(), ConsumptionFilter{Code: &code})
	if err != nil {
		return nil, err
	}
	if claimed > 0 {
		return nil, reject(ReasonAlreadyRedeemed)
	}

	bound, err := e.consumptions.CountConsumptions(ctx, c.ID(), ConsumptionFilter{UserBound: true})
	if err != nil {
		return nil, err
	}
	if bound == c.BulkNumber() {
		return nil, reject(ReasonNotValidForAccount)
	}
	return nil, nil
}

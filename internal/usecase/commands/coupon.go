package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/patch"
	"coupon-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxCodeAttempts = 10

var (
	ErrCouponNotFound        = errs.New("coupon not found")
	ErrCampaignNotFound      = errs.New("campaign not found")
	ErrDuplicateCouponCode   = errs.New("coupon code already exists")
	ErrInvalidQuantity       = errs.New("invalid quantity")
	ErrCodeSpaceExhausted    = errs.New("could not generate a unique coupon code")
	ErrUserAlreadyBound      = errs.New("user already bound to coupon")
	ErrCouponCapacityReached = errs.New("coupon has no capacity left")
)

type GenerateCouponsParams struct {
	Quantity   int
	Type       string
	Value      decimal.Decimal
	ValidUntil *time.Time
	Prefix     string
	CampaignID *uuid.UUID
}

type CreateCouponParams struct {
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
}

// UpdateCouponParams holds a partial update; nil fields keep the stored value.
type UpdateCouponParams struct {
	Active          *bool
	ValidUntil      *time.Time
	ClearValidUntil bool
	UserLimit       *int
}

type RedeemParams struct {
	Code            string
	UserID          *uuid.UUID
	AllowedTypes    []coupon.Type
	AllowedProducts []string
}

type Redemption struct {
	CouponID      uuid.UUID
	ConsumptionID uuid.UUID
	Code          string
	SubCode       *string
	Type          string
	Value         decimal.Decimal
	Display       string
	RedeemedAt    time.Time
}

type CouponCommands interface {
	Generate(ctx context.Context, params GenerateCouponsParams) ([]*coupon.Coupon, error)
	Create(ctx context.Context, params CreateCouponParams) (*coupon.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateCouponParams) (*coupon.Coupon, error)
	BindUser(ctx context.Context, couponID, userID uuid.UUID) (*coupon.Consumption, error)
	// Redeem returns a *coupon.Rejection error when the code cannot be used.
	Redeem(ctx context.Context, params RedeemParams) (*Redemption, error)
}

type couponCommandsImpl struct {
	uow         shared.UnitOfWork
	generator   CodeGenerator
	clock       clock.Clock
	maxGenerate int
}

func NewCouponCommands(uow shared.UnitOfWork, generator CodeGenerator, clock clock.Clock, maxGenerate int) CouponCommands {
	return &couponCommandsImpl{
		uow:         uow,
		generator:   generator,
		clock:       clock,
		maxGenerate: maxGenerate,
	}
}

func (c *couponCommandsImpl) Generate(ctx context.Context, params GenerateCouponsParams) ([]*coupon.Coupon, error) {
	if params.Quantity < 1 || params.Quantity > c.maxGenerate {
		return nil, ErrInvalidQuantity
	}

	var created []*coupon.Coupon
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created = make([]*coupon.Coupon, 0, params.Quantity)

		if err := c.ensureCampaign(ctx, tx, params.CampaignID); err != nil {
			return err
		}

		for range params.Quantity {
			cp, err := c.createWithFreshCode(ctx, tx, params)
			if err != nil {
				return err
			}
			created = append(created, cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "coupons generated", "count", len(created), "type", params.Type, "prefix", params.Prefix)
	return created, nil
}

func (c *couponCommandsImpl) createWithFreshCode(ctx context.Context, tx shared.Tx, params GenerateCouponsParams) (*coupon.Coupon, error) {
	for range maxCodeAttempts {
		code, err := c.generator.Code(params.Prefix)
		if err != nil {
			return nil, errs.Wrap(err, "failed to generate coupon code")
		}

		cp, err := coupon.NewCoupon(coupon.Params{
			Code:       code,
			Type:       params.Type,
			Value:      params.Value,
			UserLimit:  1,
			ValidUntil: params.ValidUntil,
			Active:     true,
			CampaignID: params.CampaignID,
			CreatedAt:  c.clock.Now(),
		})
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}

		saved, err := tx.Coupons().Create(ctx, cp)
		if err == nil {
			return saved, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
		slog.DebugContext(ctx, "generated coupon code collided, retrying", "code", code)
	}
	return nil, ErrCodeSpaceExhausted
}

func (c *couponCommandsImpl) Create(ctx context.Context, params CreateCouponParams) (*coupon.Coupon, error) {
	cp, err := coupon.NewCoupon(coupon.Params{
		Code:          params.Code,
		Type:          params.Type,
		Value:         params.Value,
		UserLimit:     params.UserLimit,
		Bulk:          params.Bulk,
		BulkNumber:    params.BulkNumber,
		ValidUntil:    params.ValidUntil,
		Active:        params.Active,
		ValidProducts: params.ValidProducts,
		CampaignID:    params.CampaignID,
		CreatedAt:     c.clock.Now(),
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var saved *coupon.Coupon
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.ensureCampaign(ctx, tx, params.CampaignID); err != nil {
			return err
		}

		var err error
		saved, err = tx.Coupons().Create(ctx, cp)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, ErrDuplicateCouponCode)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (c *couponCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdateCouponParams) (*coupon.Coupon, error) {
	var updated *coupon.Coupon
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := c.lockCoupon(ctx, tx, id)
		if err != nil {
			return err
		}

		p := current.Params()
		p.Active = patch.Coalesce(params.Active, p.Active)
		p.UserLimit = patch.Coalesce(params.UserLimit, p.UserLimit)
		p.ValidUntil = patch.CoalescePtr(params.ValidUntil, p.ValidUntil)
		if params.ClearValidUntil {
			p.ValidUntil = nil
		}

		next, err := coupon.NewCoupon(p)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		updated, err = tx.Coupons().Update(ctx, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *couponCommandsImpl) BindUser(ctx context.Context, couponID, userID uuid.UUID) (*coupon.Consumption, error) {
	var bound *coupon.Consumption
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cp, err := c.lockCoupon(ctx, tx, couponID)
		if err != nil {
			return err
		}

		_, err = tx.Consumptions().FindConsumption(ctx, cp.ID(), userID)
		switch {
		case err == nil:
			return ErrUserAlreadyBound
		case errors.Is(err, coupon.ErrConsumptionNotFound):
		default:
			return err
		}

		if !cp.IsUnlimited() {
			total, err := tx.Consumptions().CountConsumptions(ctx, cp.ID(), coupon.ConsumptionFilter{})
			if err != nil {
				return err
			}
			if total >= cp.UserLimit() {
				return ErrCouponCapacityReached
			}
		}

		bound, err = tx.Consumptions().Create(ctx, &coupon.Consumption{
			CouponID:  cp.ID(),
			UserID:    &userID,
			CreatedAt: c.clock.Now(),
		})
		switch {
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return errs.Mark(err, ErrUserNotFound)
		case infra.IsKind(err, infra.KindDuplicateKey):
			return errs.Mark(err, ErrUserAlreadyBound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return bound, nil
}

func (c *couponCommandsImpl) Redeem(ctx context.Context, params RedeemParams) (*Redemption, error) {
	// the lock lookup and the evaluator must resolve the same coupon
	code := strings.TrimSpace(params.Code)

	var result *Redemption
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// lock first so the checks below see a stable consumption set
		if found, err := tx.Coupons().FindByCode(ctx, code); err == nil {
			if _, err := tx.Coupons().LockByID(ctx, found.ID()); err != nil {
				return err
			}
		} else if !errors.Is(err, coupon.ErrCouponNotFound) {
			return err
		}

		evaluator := coupon.NewEvaluator(tx.Coupons(), tx.Consumptions(), c.clock)
		acc, err := evaluator.Evaluate(ctx, coupon.Input{
			Code:            code,
			UserID:          params.UserID,
			AllowedTypes:    params.AllowedTypes,
			AllowedProducts: params.AllowedProducts,
		})
		if err != nil {
			return err
		}

		result, err = c.record(ctx, tx, acc, params.UserID)
		return err
	})
	if err != nil {
		if rej, ok := coupon.AsRejection(err); ok {
			slog.InfoContext(ctx, "coupon redemption rejected", "code", code, "reason", rej.Reason.String())
			return nil, rej
		}
		return nil, err
	}

	slog.InfoContext(ctx, "coupon redeemed", "coupon_id", result.CouponID, "consumption_id", result.ConsumptionID)
	return result, nil
}

func (c *couponCommandsImpl) record(ctx context.Context, tx shared.Tx, acc *coupon.Acceptance, userID *uuid.UUID) (*Redemption, error) {
	cp := acc.Coupon
	now := c.clock.Now()

	var subCode *string
	if cp.Bulk() && (acc.Consumption == nil || acc.Consumption.Code == nil) {
		code, err := c.generator.SubCode(cp.Code())
		if err != nil {
			return nil, errs.Wrap(err, "failed to generate bulk sub-code")
		}
		subCode = &code
	}

	var (
		rec *coupon.Consumption
		err error
	)
	if acc.Consumption != nil {
		rec, err = tx.Consumptions().MarkRedeemed(ctx, acc.Consumption.ID, now, subCode)
		if infra.IsKind(err, infra.KindConflict) {
			return nil, &coupon.Rejection{Reason: coupon.ReasonAlreadyRedeemedByUser}
		}
	} else {
		rec, err = tx.Consumptions().Create(ctx, &coupon.Consumption{
			CouponID:   cp.ID(),
			UserID:     userID,
			Code:       subCode,
			RedeemedAt: &now,
			CreatedAt:  now,
		})
	}
	if err != nil {
		return nil, err
	}

	return &Redemption{
		CouponID:      cp.ID(),
		ConsumptionID: rec.ID,
		Code:          cp.Code().String(),
		SubCode:       rec.Code,
		Type:          cp.Type().String(),
		Value:         cp.Value(),
		Display:       cp.Display(),
		RedeemedAt:    now,
	}, nil
}

func (c *couponCommandsImpl) lockCoupon(ctx context.Context, tx shared.Tx, id uuid.UUID) (*coupon.Coupon, error) {
	cp, err := tx.Coupons().LockByID(ctx, id)
	if err != nil {
		if errors.Is(err, coupon.ErrCouponNotFound) {
			return nil, errs.Mark(err, ErrCouponNotFound)
		}
		return nil, err
	}
	return cp, nil
}

func (c *couponCommandsImpl) ensureCampaign(ctx context.Context, tx shared.Tx, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := tx.Campaigns().Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCampaignNotFound
	}
	return nil
}

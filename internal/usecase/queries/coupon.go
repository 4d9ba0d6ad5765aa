package queries

import (
	"context"
	"log/slog"
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCouponNotFound = errs.New("coupon not found")

// EvaluationResult is an accepted code, ready to be shown or redeemed.
type EvaluationResult struct {
	CouponID uuid.UUID       `json:"coupon_id"`
	Code     string          `json:"code"`
	Value    decimal.Decimal `json:"value"`
	Type     string          `json:"type"`
	Display  string          `json:"display"`
}

// CouponDetails is the compact shape served by the details endpoint.
type CouponDetails struct {
	Code  string
	Value decimal.Decimal
	Type  string
}

type CouponReadStore interface {
	List(ctx context.Context, filters CouponFilters, lastCreatedAt *time.Time, lastID *uuid.UUID, limit int32) ([]*CouponListItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CouponDetailView, error)
}

type CouponEvaluator interface {
	Evaluate(ctx context.Context, in coupon.Input) (*coupon.Acceptance, error)
}

type CouponQueries interface {
	// Evaluate returns a *coupon.Rejection error when the code cannot be used.
	Evaluate(ctx context.Context, in coupon.Input) (*EvaluationResult, error)
	GetDetails(ctx context.Context, in coupon.Input) (*CouponDetails, error)
	List(ctx context.Context, filters CouponFilters, cursor *Cursor, limit int) ([]*CouponListItem, *Cursor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CouponDetailView, error)
}

type couponQueriesImpl struct {
	evaluator CouponEvaluator
	readStore CouponReadStore
}

func NewCouponQueries(evaluator CouponEvaluator, readStore CouponReadStore) CouponQueries {
	return &couponQueriesImpl{
		evaluator: evaluator,
		readStore: readStore,
	}
}

func (q *couponQueriesImpl) Evaluate(ctx context.Context, in coupon.Input) (*EvaluationResult, error) {
	acc, err := q.evaluator.Evaluate(ctx, in)
	if err != nil {
		if rej, ok := coupon.AsRejection(err); ok {
			slog.InfoContext(ctx, "coupon rejected", "code", in.Code, "reason", rej.Reason.String())
			return nil, rej
		}
		return nil, errs.Wrap(err, "failed to evaluate coupon")
	}

	return &EvaluationResult{
		CouponID: acc.Coupon.ID(),
		Code:     acc.Code(),
		Value:    acc.Value(),
		Type:     acc.Type().String(),
		Display:  acc.Coupon.Display(),
	}, nil
}

func (q *couponQueriesImpl) GetDetails(ctx context.Context, in coupon.Input) (*CouponDetails, error) {
	res, err := q.Evaluate(ctx, in)
	if err != nil {
		return nil, err
	}
	return &CouponDetails{
		Code:  res.Code,
		Value: res.Value,
		Type:  res.Type,
	}, nil
}

func (q *couponQueriesImpl) List(ctx context.Context, filters CouponFilters, cursor *Cursor, limit int) ([]*CouponListItem, *Cursor, error) {
	limit = ClampLimit(limit)

	var (
		afterAt *time.Time
		afterID *uuid.UUID
	)
	if cursor != nil && cursor.After != "" {
		k, err := ParseKeyset(cursor.After)
		if err != nil {
			return nil, nil, err
		}
		afterAt, afterID = &k.CreatedAt, &k.ID
	}

	// One extra row tells whether another page exists.
	rows, err := q.readStore.List(ctx, filters, afterAt, afterID, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	if len(rows) <= limit {
		return rows, nil, nil
	}

	last := rows[limit-1]
	next := &Cursor{After: Keyset{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()}
	return rows[:limit], next, nil
}

func (q *couponQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CouponDetailView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCouponNotFound)
		}
		return nil, err
	}
	return view, nil
}

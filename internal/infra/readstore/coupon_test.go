//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCouponReadQueries struct {
	mock.Mock
}

func (m *mockCouponReadQueries) GetCouponByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *mockCouponReadQueries) ListCoupons(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCouponsParams) ([]sqlc.ListCouponsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.ListCouponsRow), args.Error(1)
}

func (m *mockCouponReadQueries) ListCouponProductNames(ctx context.Context, db sqlc.DBTX, couponID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, db, couponID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCouponReadQueries) ListCouponUsersByCoupon(ctx context.Context, db sqlc.DBTX, couponID uuid.UUID) ([]sqlc.ListCouponUsersByCouponRow, error) {
	args := m.Called(ctx, db, couponID)
	return args.Get(0).([]sqlc.ListCouponUsersByCouponRow), args.Error(1)
}

func TestCouponReadStore_FindByID_CountsEveryConsumption(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	id := uuid.New()
	userID := uuid.New()
	row := sqlc.Coupons{
		ID:        id,
		Code:      "SAVE10",
		Type:      "monetary",
		Value:     pgconv.DecimalToNumeric(decimal.NewFromInt(10)),
		UserLimit: 0,
		Active:    true,
		CreatedAt: pgconv.TimeToPgtype(at),
	}
	consumptions := []sqlc.ListCouponUsersByCouponRow{
		{ID: uuid.New(), CouponID: id, RedeemedAt: pgconv.TimeToPgtype(at), CreatedAt: pgconv.TimeToPgtype(at)},
		{ID: uuid.New(), CouponID: id, UserID: pgconv.UUIDPtrToPgtype(&userID), UserEmail: pgtype.Text{String: "member@example.com", Valid: true}, CreatedAt: pgconv.TimeToPgtype(at)},
	}

	q := new(mockCouponReadQueries)
	q.On("GetCouponByID", mock.Anything, mock.Anything, id).Return(row, nil)
	q.On("ListCouponProductNames", mock.Anything, mock.Anything, id).Return([]string{}, nil)
	q.On("ListCouponUsersByCoupon", mock.Anything, mock.Anything, id).Return(consumptions, nil)

	view, err := NewCouponReadStore(q, nil).FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 2, view.UserCount, "anonymous redemptions count as uses")
	assert.Equal(t, 1, view.RedeemedCount)
	require.Len(t, view.Consumptions, 2)
	assert.Nil(t, view.Consumptions[0].UserID)
	q.AssertExpectations(t)
}

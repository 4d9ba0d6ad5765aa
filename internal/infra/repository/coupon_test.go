//go:build unit

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCouponQueries struct {
	mock.Mock
}

func (m *MockCouponQueries) GetCouponByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, code)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *MockCouponQueries) GetCouponBySubCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, code)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *MockCouponQueries) GetCouponByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *MockCouponQueries) LockCouponByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *MockCouponQueries) CreateCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCouponParams) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *MockCouponQueries) UpdateCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateCouponParams) (sqlc.Coupons, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Coupons), args.Error(1)
}

func (m *MockCouponQueries) UpsertProduct(ctx context.Context, db sqlc.DBTX, name string) (uuid.UUID, error) {
	args := m.Called(ctx, db, name)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCouponQueries) AddCouponProduct(ctx context.Context, db sqlc.DBTX, couponID, productID uuid.UUID) error {
	args := m.Called(ctx, db, couponID, productID)
	return args.Error(0)
}

func (m *MockCouponQueries) ListCouponProductNames(ctx context.Context, db sqlc.DBTX, couponID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, db, couponID)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func couponRow(code string) sqlc.Coupons {
	return sqlc.Coupons{
		ID:         uuid.New(),
		Code:       code,
		Type:       "monetary",
		Value:      pgconv.DecimalToNumeric(decimal.NewFromInt(10)),
		UserLimit:  1,
		Active:     true,
		ValidUntil: pgtype.Timestamptz{},
		CreatedAt:  pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
}

func TestCouponRepository_FindByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("exact code", func(t *testing.T) {
		row := couponRow("SAVE10")
		q := new(MockCouponQueries)
		q.On("GetCouponByCode", ctx, mock.Anything, "SAVE10").Return(row, nil)
		q.On("ListCouponProductNames", ctx, mock.Anything, row.ID).Return([]string{"book"}, nil)

		c, err := NewCouponRepository(q, nil).FindByCode(ctx, "SAVE10")

		require.NoError(t, err)
		assert.Equal(t, row.ID, c.ID())
		assert.Equal(t, "SAVE10", c.Code().String())
		assert.True(t, decimal.NewFromInt(10).Equal(c.Value()))
		assert.Equal(t, []string{"book"}, c.ValidProducts())
		q.AssertNotCalled(t, "GetCouponBySubCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to bulk sub-code", func(t *testing.T) {
		row := couponRow("BULK")
		row.Bulk = true
		row.BulkNumber = 5
		q := new(MockCouponQueries)
		q.On("GetCouponByCode", ctx, mock.Anything, "BULK-ABCDEFGH").Return(sqlc.Coupons{}, pgx.ErrNoRows)
		q.On("GetCouponBySubCode", ctx, mock.Anything, "BULK-ABCDEFGH").Return(row, nil)
		q.On("ListCouponProductNames", ctx, mock.Anything, row.ID).Return(nil, nil)

		c, err := NewCouponRepository(q, nil).FindByCode(ctx, "BULK-ABCDEFGH")

		require.NoError(t, err)
		assert.Equal(t, "BULK", c.Code().String())
		assert.True(t, c.Bulk())
	})

	t.Run("not found is marked", func(t *testing.T) {
		q := new(MockCouponQueries)
		q.On("GetCouponByCode", ctx, mock.Anything, "NOPE").Return(sqlc.Coupons{}, pgx.ErrNoRows)
		q.On("GetCouponBySubCode", ctx, mock.Anything, "NOPE").Return(sqlc.Coupons{}, pgx.ErrNoRows)

		c, err := NewCouponRepository(q, nil).FindByCode(ctx, "NOPE")

		assert.Nil(t, c)
		assert.ErrorIs(t, err, coupon.ErrCouponNotFound)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("database failure", func(t *testing.T) {
		q := new(MockCouponQueries)
		q.On("GetCouponByCode", ctx, mock.Anything, "X").Return(sqlc.Coupons{}, errors.New("connection reset"))

		_, err := NewCouponRepository(q, nil).FindByCode(ctx, "X")

		require.Error(t, err)
		assert.NotErrorIs(t, err, coupon.ErrCouponNotFound)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestCouponRepository_Create(t *testing.T) {
	ctx := context.Background()

	c, err := coupon.NewCoupon(coupon.Params{
		Code:          "SPRING",
		Type:          "percentage",
		Value:         decimal.NewFromInt(15),
		UserLimit:     3,
		Active:        true,
		ValidProducts: []string{"book", "pen"},
	})
	require.NoError(t, err)

	t.Run("persists coupon and products", func(t *testing.T) {
		row := couponRow("SPRING")
		row.ID = c.ID()
		row.Type = "percentage"
		row.Value = pgconv.DecimalToNumeric(decimal.NewFromInt(15))
		row.UserLimit = 3
		bookID, penID := uuid.New(), uuid.New()

		q := new(MockCouponQueries)
		q.On("CreateCoupon", ctx, mock.Anything, mock.MatchedBy(func(p sqlc.CreateCouponParams) bool {
			return p.ID == c.ID() && p.Code == "SPRING" && p.Type == "percentage" && p.UserLimit == 3
		})).Return(row, nil)
		q.On("UpsertProduct", ctx, mock.Anything, "book").Return(bookID, nil)
		q.On("UpsertProduct", ctx, mock.Anything, "pen").Return(penID, nil)
		q.On("AddCouponProduct", ctx, mock.Anything, c.ID(), bookID).Return(nil)
		q.On("AddCouponProduct", ctx, mock.Anything, c.ID(), penID).Return(nil)

		created, err := NewCouponRepository(q, nil).Create(ctx, c)

		require.NoError(t, err)
		assert.Equal(t, c.ID(), created.ID())
		assert.Equal(t, []string{"book", "pen"}, created.ValidProducts())
		q.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		q := new(MockCouponQueries)
		q.On("CreateCoupon", ctx, mock.Anything, mock.Anything).Return(sqlc.Coupons{}, pgx.ErrNoRows)

		_, err := NewCouponRepository(q, nil).Create(ctx, c)

		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("foreign key violation", func(t *testing.T) {
		q := new(MockCouponQueries)
		q.On("CreateCoupon", ctx, mock.Anything, mock.Anything).
			Return(sqlc.Coupons{}, &pgconn.PgError{Code: "23503"})

		_, err := NewCouponRepository(q, nil).Create(ctx, c)

		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})
}

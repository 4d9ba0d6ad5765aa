//go:build unit || e2e

// Package dbtest writes fixture rows straight into the test database,
// bypassing the application so tests can arrange states the API refuses.
package dbtest

import (
	"context"
	"sync"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TestPassword is the plain text behind every fixture user's hash.
const TestPassword = "password123"

var testPasswordHash = sync.OnceValues(func() (string, error) {
	return password.Hash(TestPassword, bcrypt.MinCost)
})

// resetSQL lists every application table; schema_migrations is left alone.
const resetSQL = `TRUNCATE coupon_users, coupon_products, coupons, products, campaigns, users RESTART IDENTITY CASCADE`

var referenceProducts = []string{"basic", "premium"}

// CreateTestUser returns the id of the active user holding email, inserting it when absent.
func CreateTestUser(t testingT, db DBLike, email string, role user.Role) uuid.UUID {
	t.Helper()

	hash, err := testPasswordHash()
	require.NoError(t, err)

	var id uuid.UUID
	err = db.QueryRow(context.Background(), `
		WITH ins AS (
			INSERT INTO users (email, password_hash, role, is_active)
			VALUES ($1, $2, $3, true)
			ON CONFLICT (email) WHERE is_active = true DO NOTHING
			RETURNING id
		)
		SELECT id FROM ins
		UNION ALL
		SELECT id FROM users WHERE email = $1 AND is_active = true
		LIMIT 1`, email, hash, string(role)).Scan(&id)
	require.NoError(t, err)
	return id
}

// CouponFixture is a row for CreateTestCoupon. Zero values match the column
// defaults except UserLimit, which is taken as given.
type CouponFixture struct {
	Code       string
	Type       string
	Value      decimal.Decimal
	UserLimit  int
	Bulk       bool
	BulkNumber int
	ValidUntil *time.Time
	Inactive   bool
	CampaignID *uuid.UUID
	Products   []string
}

func CreateTestCoupon(t testingT, db DBLike, f CouponFixture) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	if f.Type == "" {
		f.Type = "monetary"
	}

	var id uuid.UUID
	err := db.QueryRow(ctx, `
		INSERT INTO coupons (code, type, value, user_limit, bulk, bulk_number, valid_until, active, campaign_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		f.Code, f.Type, f.Value, f.UserLimit, f.Bulk, f.BulkNumber, f.ValidUntil, !f.Inactive, f.CampaignID,
	).Scan(&id)
	require.NoError(t, err)

	for _, name := range f.Products {
		tag, err := db.Exec(ctx, `
			INSERT INTO coupon_products (coupon_id, product_id)
			SELECT $1, id FROM products WHERE name = $2`, id, name)
		require.NoError(t, err)
		require.EqualValues(t, 1, tag.RowsAffected(), "product %q is not seeded", name)
	}
	return id
}

// CreateTestConsumption inserts a coupon_users row. A nil redeemedAt leaves it
// claimed but unredeemed.
func CreateTestConsumption(t testingT, db DBLike, couponID uuid.UUID, userID *uuid.UUID, code *string, redeemedAt *time.Time) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO coupon_users (coupon_id, user_id, code, redeemed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, couponID, userID, code, redeemedAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func SeedReferenceData(pool *pgxpool.Pool) error {
	batch := &pgx.Batch{}
	for _, name := range referenceProducts {
		batch.Queue("INSERT INTO products (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
	}
	return pool.SendBatch(context.Background(), batch).Close()
}

// ResetDB empties every table and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, resetSQL); err != nil {
		return err
	}
	return SeedReferenceData(pool)
}

type testingT interface {
	require.TestingT
	Helper()
}

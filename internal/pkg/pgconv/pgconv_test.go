//go:build unit

package pgconv_test

import (
	"database/sql"
	"math"
	"math/big"
	"testing"
	"time"

	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumeric(t *testing.T) {
	for _, s := range []string{"0", "10", "12.5", "0.001", "-3.25", "99999999.99"} {
		t.Run(s, func(t *testing.T) {
			d := decimal.RequireFromString(s)
			got, err := pgconv.DecimalFromNumeric(pgconv.DecimalToNumeric(d))
			require.NoError(t, err)
			assert.True(t, d.Equal(got), "want %s got %s", d, got)
		})
	}

	t.Run("null is zero", func(t *testing.T) {
		got, err := pgconv.DecimalFromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("NaN is refused", func(t *testing.T) {
		_, err := pgconv.DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})
		assert.ErrorIs(t, err, pgconv.ErrInvalidNumericValue)
	})

	t.Run("infinity is refused", func(t *testing.T) {
		_, err := pgconv.DecimalFromNumeric(pgtype.Numeric{Int: big.NewInt(0), InfinityModifier: pgtype.Infinity, Valid: true})
		assert.ErrorIs(t, err, pgconv.ErrInvalidNumericValue)
	})
}

func TestIntToInt32(t *testing.T) {
	assert.Equal(t, int32(5), pgconv.IntToInt32(5))
	assert.Equal(t, int32(math.MaxInt32), pgconv.IntToInt32(math.MaxInt32+1))
	assert.Equal(t, int32(math.MinInt32), pgconv.IntToInt32(math.MinInt32-1))
}

func TestNullableRoundTrips(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, &id, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id)))
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))

	s := "SAVE10-0001"
	assert.Equal(t, &s, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s)))
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, &at, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(&at)))
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(nil)))
}

func TestErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := errs.Wrap(&pgconn.PgError{Code: "23503"}, "failed to bind user")

	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(errs.Wrap(sql.ErrNoRows, "lookup")))
	assert.False(t, pgconv.IsNoRows(unique))

	assert.True(t, pgconv.IsUniqueViolation(unique))
	assert.False(t, pgconv.IsUniqueViolation(fk))
	assert.True(t, pgconv.IsForeignKeyViolation(fk))

	assert.Equal(t, "23503", pgconv.SQLState(fk))
	assert.Empty(t, pgconv.SQLState(pgx.ErrNoRows))
}

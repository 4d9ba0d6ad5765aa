// Package pgconv converts between domain values and the pgtype wrappers sqlc
// generates for nullable columns.
package pgconv

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var ErrInvalidNumericValue = errors.New("invalid numeric value in pgtype.Numeric")

func ptr[T any](v T) *T { return &v }

func UUIDPtrFromPgtype(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	return ptr(uuid.UUID(v.Bytes))
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringPtrFromPgtype(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	return ptr(v.String)
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimePtrFromPgtype(v pgtype.Timestamptz) *time.Time {
	if !v.Valid {
		return nil
	}
	return ptr(v.Time)
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return TimeToPgtype(*t)
}

// DecimalFromNumeric rebuilds the value from coefficient and exponent, never
// through float64. NULL reads as zero; NaN and infinities are refused.
func DecimalFromNumeric(v pgtype.Numeric) (decimal.Decimal, error) {
	switch {
	case !v.Valid:
		return decimal.Zero, nil
	case v.NaN, v.InfinityModifier != pgtype.Finite:
		return decimal.Zero, ErrInvalidNumericValue
	}
	return decimal.NewFromBigInt(v.Int, v.Exp), nil
}

func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// IntToInt32 clamps to the int32 range.
func IntToInt32(v int) int32 {
	return int32(max(math.MinInt32, min(v, math.MaxInt32)))
}

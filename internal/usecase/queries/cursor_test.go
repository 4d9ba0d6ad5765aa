//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyset_RoundTrip(t *testing.T) {
	k := queries.Keyset{
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	got, err := queries.ParseKeyset(k.Encode())

	require.NoError(t, err)
	assert.Equal(t, k.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(k.CreatedAt.Truncate(time.Microsecond)))
}

func TestParseKeyset_Invalid(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := map[string]string{
		"empty":           "",
		"not base64":      "%%%",
		"unknown version": enc("v2:1700000000000000-" + uuid.NewString()),
		"missing id":      enc("v1:1700000000000000"),
		"bad timestamp":   enc("v1:soon-" + uuid.NewString()),
		"bad id":          enc("v1:1700000000000000-nope"),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := queries.ParseKeyset(token)
			assert.ErrorIs(t, err, queries.ErrInvalidCursor)
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ClampLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ClampLimit(-5))
	assert.Equal(t, 7, queries.ClampLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ClampLimit(queries.MaxListLimit+1))
}

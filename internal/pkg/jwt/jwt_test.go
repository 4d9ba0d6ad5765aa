//go:build unit

package jwt

import (
	"testing"
	"time"

	"coupon-service/internal/domain/user"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)
	userID := uuid.New()

	first, err := svc.GenerateToken(userID, user.RoleAdmin)
	require.NoError(t, err)
	second, err := svc.GenerateToken(userID, user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "tokens issued in the same second must differ")

	claims, err := svc.ValidateToken(first)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestService_ValidateToken(t *testing.T) {
	userID := uuid.New()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := NewService("secret", time.Hour)
	svc.now = func() time.Time { return issued }
	valid, err := svc.GenerateToken(userID, user.RoleViewer)
	require.NoError(t, err)

	otherKey, err := NewService("other", time.Hour).GenerateToken(userID, user.RoleViewer)
	require.NoError(t, err)

	noneAlg, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{
		UserID:           userID,
		RegisteredClaims: gojwt.RegisteredClaims{Issuer: issuer, ExpiresAt: gojwt.NewNumericDate(issued.Add(time.Hour))},
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "within lifetime", token: valid, now: issued.Add(59 * time.Minute)},
		{name: "inside leeway", token: valid, now: issued.Add(time.Hour + 10*time.Second)},
		{name: "expired", token: valid, now: issued.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "wrong key", token: otherKey, now: issued, wantErr: ErrInvalidToken},
		{name: "none algorithm", token: noneAlg, now: issued, wantErr: ErrInvalidToken},
		{name: "garbage", token: "not-a-token", now: issued, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.now }

			claims, err := svc.ValidateToken(tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

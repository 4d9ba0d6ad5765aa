//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/pkg/jwt"
	"coupon-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	validator := usecase.NewTokenValidator(svc)
	userID := uuid.New()

	t.Run("valid token yields caller and role", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.RoleOperator)
		require.NoError(t, err)

		gotID, gotRole, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, user.RoleOperator, gotRole)
	})

	t.Run("expired token keeps its cause", func(t *testing.T) {
		token, err := jwt.NewService("secret", -time.Hour).GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		require.ErrorIs(t, err, usecase.ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.Role("superuser"))
		require.NoError(t, err)

		gotID, _, err := validator.ValidateToken(token)
		require.ErrorIs(t, err, usecase.ErrInvalidToken)
		assert.Equal(t, uuid.Nil, gotID)
	})
}

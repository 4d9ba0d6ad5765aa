//go:build unit || e2e

// Package authtest obtains access tokens for tests, either by logging in
// through the router or by signing one directly.
package authtest

import (
	"net/http"
	"testing"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/handler/dto/request"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/jwt"
	"coupon-service/tests/common/dbtest"
	"coupon-service/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const loginPath = "/api/auth/login"

// Login returns the token set in the access_token cookie.
func Login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	rec := httptest.PerformRequest(t, router, http.MethodPost, loginPath,
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := httptest.ExtractCookie(rec, "access_token")
	require.NotNil(t, c, "access_token cookie not set")
	require.NotEmpty(t, c.Value, "access_token cookie is empty")
	return c.Value
}

// SignUp inserts a user with dbtest.TestPassword and logs in as it.
func SignUp(t *testing.T, db dbtest.DBLike, router *gin.Engine, email string, role user.Role) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return Login(t, router, email, dbtest.TestPassword)
}

// Sign issues a token with a caller chosen lifetime; a negative ttl yields one
// that is already expired.
func Sign(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role user.Role, ttl time.Duration) string {
	t.Helper()
	token, err := jwt.NewService(cfg.Secret, ttl).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/pkg/cookie"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var (
	errMissingToken       = errs.New("access token required")
	errInvalidToken       = errs.New("invalid or expired token")
	errMissingAuthContext = errs.New("auth context missing")
	errInsufficientRole   = errs.New("insufficient role")
)

// AuthMiddleware resolves the caller from the access_token cookie or a bearer
// header, in that order.
type AuthMiddleware struct {
	validator usecase.TokenValidator
}

func NewAuthMiddleware(validator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth answers 401 unless a valid token is present.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := m.authenticate(c)
		switch {
		case !found:
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
		case err != nil:
			slog.WarnContext(c.Request.Context(), "rejected access token", "error", err, "path", c.FullPath())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, errInvalidToken), "Invalid or expired token", nil)
		default:
			c.Next()
		}
	}
}

// OptionalAuth never aborts: without a valid token the request continues
// anonymously, which is how coupon endpoints evaluate guests.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.authenticate(c); err != nil {
			slog.DebugContext(c.Request.Context(), "ignoring invalid token", "error", err)
		}
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(min user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		switch {
		case !ok:
			httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		case !role.AtLeast(min):
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
		default:
			c.Next()
		}
	}
}

// authenticate stores the caller on c. found is false when no token was sent.
func (m *AuthMiddleware) authenticate(c *gin.Context) (found bool, err error) {
	token := extractToken(c)
	if token == "" {
		return false, nil
	}

	userID, role, err := m.validator.ValidateToken(token)
	if err != nil {
		return true, err
	}
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, role)
	return true, nil
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// OptionalUserID returns nil for anonymous requests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &id
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	v, ok := c.Get(ctxUserRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}

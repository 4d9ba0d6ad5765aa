package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/handler/middleware"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/cookie"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingUserContext = errs.New("user id missing from context")

type AuthHandler struct {
	cmds     commands.AuthCommands
	q        queries.UserQueries
	cookie   config.CookieConfig
	tokenTTL time.Duration
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:     cmds,
		q:        q,
		cookie:   cfg.Cookie,
		tokenTTL: cfg.JWT.Duration,
	}
}

// @Summary User login
// @Description Login with email and password. The token is also set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		abortWithLoginError(c, err)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookie, result.AccessToken, h.tokenTTL)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// abortWithLoginError never tells an unknown email apart from a wrong password.
func abortWithLoginError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, commands.ErrUserNotFound):
		status, msg = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, commands.ErrUserInactive):
		status, msg = http.StatusForbidden, "Account is inactive"
	case errors.Is(err, commands.ErrAuthenticationFailed):
		status, msg = http.StatusBadRequest, "Invalid request data"
	}
	httperr.AbortWithError(c, status, err, msg, nil)
}

// @Summary User logout
// @Description Clears the access token cookie. Bearer tokens are discarded client side.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.CurrentUserView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		// RequireAuth guarantees the id, so its absence is a wiring bug
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
		return
	}

	me, err := h.q.GetCurrentUser(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, me)
	case errors.Is(err, queries.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errors.Is(err, queries.ErrUserInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

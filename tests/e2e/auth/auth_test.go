//go:build e2e

package auth_test

import (
	"net/http"
	"testing"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/handler/dto/request"
	"coupon-service/internal/handler/dto/response"
	"coupon-service/tests/common/authtest"
	"coupon-service/tests/common/dbtest"
	"coupon-service/tests/common/httptest"
	"coupon-service/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", user.RoleAdmin)
	dbtest.CreateTestUser(s.T(), s.DB, "viewer@example.com", user.RoleViewer)
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", user.RoleAdmin)

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{name: "valid credentials", email: "admin@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusOK},
		{name: "unknown user", email: "nobody@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusUnauthorized},
		{name: "wrong password", email: "admin@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized},
		{name: "inactive user", email: "inactive@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusUnauthorized},
		{name: "empty email", email: "", password: dbtest.TestPassword, expectedStatus: http.StatusBadRequest},
		{name: "empty password", email: "admin@example.com", password: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var res response.LoginResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
			require.NotEmpty(t, res.AccessToken)
			require.Equal(t, tt.email, res.User.Email)

			cookie := httptest.ExtractCookie(w, "access_token")
			require.NotNil(t, cookie)
			require.Equal(t, res.AccessToken, cookie.Value)

			var lastLogin any
			err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
			require.NoError(t, err)
			require.NotNil(t, lastLogin, "last_login should be set")
		})
	}
}

func (s *authSuite) TestLogout() {
	s.Run("clears the cookie", func() {
		t := s.T()
		token := authtest.Login(t, s.Router, "admin@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		cookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cookie)
		require.Empty(t, cookie.Value)
	})

	s.Run("requires a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		token          func() string
		expectedStatus int
		expectedEmail  string
	}{
		{
			name: "admin",
			token: func() string {
				return authtest.SignUp(s.T(), s.DB, s.Router, "admin2@example.com", user.RoleAdmin)
			},
			expectedStatus: http.StatusOK,
			expectedEmail:  "admin2@example.com",
		},
		{
			name: "viewer",
			token: func() string {
				return authtest.Login(s.T(), s.Router, "viewer@example.com", dbtest.TestPassword)
			},
			expectedStatus: http.StatusOK,
			expectedEmail:  "viewer@example.com",
		},
		{
			name:           "invalid token",
			token:          func() string { return "invalid-token" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no token",
			token:          func() string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, tt.token())
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				body := w.Body.String()
				require.Contains(t, body, tt.expectedEmail)
				require.NotContains(t, body, "password")
			}
		})
	}
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("expired token is rejected", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil,
			authtest.Sign(t, s.Config.JWT, userID, user.RoleAdmin, -2*time.Minute))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("each login issues a distinct valid token", func() {
		t := s.T()

		token1 := authtest.Login(t, s.Router, "admin@example.com", dbtest.TestPassword)
		token2 := authtest.Login(t, s.Router, "admin@example.com", dbtest.TestPassword)
		require.NotEqual(t, token1, token2)

		for _, token := range []string{token1, token2} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})
}

//go:build unit

package api_test

import (
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"coupon-service/internal/handler/api"
	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
	"coupon-service/tests/common/builder"
	"coupon-service/tests/common/httptest"
	"coupon-service/tests/common/testutil"
	commandsmock "coupon-service/tests/mock/commands"
	queriesmock "coupon-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
	mePath     = "/auth/me"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	cfg          config.Config
	account      *builder.UserBuilder
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cfg = config.NewTestConfig()
	s.account = builder.NewUserBuilder()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	handler := api.NewAuthHandler(s.mockCommands, s.mockQueries, s.cfg)

	s.router.POST(loginPath, handler.Login)
	s.router.POST(logoutPath, handler.Logout)
	// stands in for RequireAuth: a bearer token authenticates the account
	s.router.GET(mePath, func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.account.ID)
		}
	}, handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) login(body any) *nethttptest.ResponseRecorder {
	return httptest.PerformRequest(s.T(), s.router, http.MethodPost, loginPath, body, "")
}

func (s *AuthHandlerTestSuite) TestLogin_SetsCookie() {
	req := s.account.BuildLogin()
	s.mockCommands.EXPECT().Login(gomock.Any(), req).
		Return(&commands.LoginResult{User: s.account.BuildView(), AccessToken: "jwt-abc"}, nil)

	rec := s.login(req)

	var body resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal("jwt-abc", body.AccessToken)
	s.Equal(s.account.Email, body.User.Email)

	c := httptest.ExtractCookie(rec, "access_token")
	s.Require().NotNil(c)
	s.Equal("jwt-abc", c.Value)
	s.True(c.HttpOnly)
	s.Equal(int(s.cfg.JWT.Duration.Seconds()), c.MaxAge)
}

func (s *AuthHandlerTestSuite) TestLogin_Binding() {
	base := s.account.BuildLogin()

	tests := []struct {
		name  string
		muts  []testutil.Mutation
		valid bool
	}{
		{name: "as built", valid: true},
		{name: "8 char password", muts: []testutil.Mutation{testutil.Field("password", "12345678")}, valid: true},
		{name: "7 char password", muts: []testutil.Mutation{testutil.Field("password", "1234567")}},
		{name: "73 char password", muts: []testutil.Mutation{testutil.Field("password", strings.Repeat("p", 73))}},
		{name: "not an email", muts: []testutil.Mutation{testutil.Field("email", "invalid-email")}},
		{name: "empty email", muts: []testutil.Mutation{testutil.Field("email", "")}},
		{name: "no email", muts: []testutil.Mutation{testutil.Without("email")}},
		{name: "no password", muts: []testutil.Mutation{testutil.Without("password")}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := testutil.DtoMap(s.T(), base, tt.muts...)

			if !tt.valid {
				httptest.AssertErrorResponse(s.T(), s.login(body), http.StatusBadRequest, "Invalid request format")
				return
			}

			email, _ := body["email"].(string)
			password, _ := body["password"].(string)
			s.mockCommands.EXPECT().Login(gomock.Any(), reqdto.LoginRequest{Email: email, Password: password}).
				Return(&commands.LoginResult{User: s.account.BuildView(), AccessToken: "t"}, nil)
			httptest.AssertSuccessResponse(s.T(), s.login(body), http.StatusOK, nil)
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin_Errors() {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{err: commands.ErrInvalidCredentials, status: http.StatusUnauthorized, msg: "Invalid email or password"},
		{err: commands.ErrUserNotFound, status: http.StatusUnauthorized, msg: "Invalid email or password"},
		{err: commands.ErrUserInactive, status: http.StatusForbidden, msg: "Account is inactive"},
		{err: commands.ErrAuthenticationFailed, status: http.StatusBadRequest, msg: "Invalid request data"},
		{err: errors.New("database error"), status: http.StatusInternalServerError, msg: "Internal server error"},
	}

	for _, tt := range tests {
		s.Run(tt.err.Error(), func() {
			s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := s.login(s.account.BuildLogin())
			httptest.AssertErrorResponse(s.T(), rec, tt.status, tt.msg)
			s.Nil(httptest.ExtractCookie(rec, "access_token"))
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, logoutPath, nil, "token")
	s.Equal(http.StatusNoContent, rec.Code)

	c := httptest.ExtractCookie(rec, "access_token")
	s.Require().NotNil(c)
	s.Empty(c.Value)
	s.Negative(c.MaxAge)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("includes coupon activity", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.account.ID).Return(&queries.CurrentUserView{
			AuthorizedUserView: *s.account.BuildView(),
			Redeemed:           2,
			Pending:            1,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, mePath, nil, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.account.Email, body["email"])
		s.InDelta(2, body["redeemed_coupons"], 0)
		s.InDelta(1, body["pending_coupons"], 0)
		s.NotContains(body, "last_login")
	})

	s.Run("no user in context is a wiring fault", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, mePath, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	errCases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "deleted account", err: queries.ErrUserNotFound, status: http.StatusNotFound, msg: "User not found"},
		{name: "deactivated account", err: queries.ErrUserInactive, status: http.StatusForbidden, msg: "Account is inactive"},
		{name: "read failure", err: errors.New("database error"), status: http.StatusInternalServerError, msg: "Internal server error"},
	}
	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, mePath, nil, "token")
			httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
		})
	}
}

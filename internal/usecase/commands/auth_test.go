//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coupon-service/internal/domain/user"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/password"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/shared"
	"coupon-service/tests/common/builder"
	commandsmock "coupon-service/tests/mock/commands"
	queriesmock "coupon-service/tests/mock/queries"
	sharedmock "coupon-service/tests/mock/shared"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var loginAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type authMocks struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	users     *sharedmock.MockUserRepository
	readStore *queriesmock.MockUserReadStore
	tokens    *commandsmock.MockTokenIssuer
}

func newAuthMocks(t *testing.T) (authMocks, commands.AuthCommands) {
	ctrl := gomock.NewController(t)
	m := authMocks{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		users:     sharedmock.NewMockUserRepository(ctrl),
		readStore: queriesmock.NewMockUserReadStore(ctrl),
		tokens:    commandsmock.NewMockTokenIssuer(ctrl),
	}
	return m, commands.NewAuthCommands(m.uow, m.readStore, m.tokens, clock.NewFixed(loginAt))
}

// runInTx makes Within call fn with the mocked Tx.
func (m authMocks) runInTx() {
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		})
	m.tx.EXPECT().Users().Return(m.users)
}

func TestAuthCommands_Login(t *testing.T) {
	hash, err := password.Hash("password123", bcrypt.MinCost)
	require.NoError(t, err)

	account := builder.NewUserBuilder().WithPasswordHash(hash)
	admin := account.BuildView()
	inactive := builder.NewUserBuilder().AsInactive().BuildView()

	// stands in for any infrastructure failure
	errInfra := errors.New("infra")

	testCases := []struct {
		name      string
		setup     func(m authMocks)
		expectErr error
	}{
		{
			name: "issues a token and records the login time",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), "test@example.com").Return(admin, account.PasswordHash, nil)
				m.tokens.EXPECT().GenerateToken(admin.ID, user.RoleAdmin).Return("signed", nil)
				m.runInTx()
				m.users.EXPECT().RecordLogin(gomock.Any(), admin.ID, loginAt).Return(nil)
			},
		},
		{
			name: "recording the login may fail",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(admin, hash, nil)
				m.tokens.EXPECT().GenerateToken(admin.ID, user.RoleAdmin).Return("signed", nil)
				m.runInTx()
				m.users.EXPECT().RecordLogin(gomock.Any(), admin.ID, loginAt).
					Return(infra.WrapRepoErr("failed to record user login", errors.New("timeout")))
			},
		},
		{
			name: "unknown email",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
					Return(nil, "", infra.WrapRepoErr("failed to find user by email", pgx.ErrNoRows))
			},
			expectErr: commands.ErrInvalidCredentials,
		},
		{
			name: "lookup failure is not a credential error",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
					Return(nil, "", infra.WrapRepoErr("failed to find user by email", errors.New("conn reset")))
			},
			expectErr: errInfra,
		},
		{
			name: "inactive user",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(inactive, hash, nil)
			},
			expectErr: commands.ErrUserInactive,
		},
		{
			name: "wrong password",
			setup: func(m authMocks) {
				other, _ := password.Hash("another-password", bcrypt.MinCost)
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(admin, other, nil)
			},
			expectErr: commands.ErrInvalidCredentials,
		},
		{
			name: "corrupt hash",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(admin, "not-a-bcrypt-hash", nil)
			},
			expectErr: errInfra,
		},
		{
			name: "token failure",
			setup: func(m authMocks) {
				m.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(admin, hash, nil)
				m.tokens.EXPECT().GenerateToken(gomock.Any(), gomock.Any()).Return("", errors.New("sign"))
			},
			expectErr: commands.ErrTokenGeneration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, cmds := newAuthMocks(t)
			tc.setup(m)

			res, err := cmds.Login(context.Background(), account.BuildLogin())

			switch {
			case tc.expectErr == errInfra:
				require.Error(t, err)
				assert.NotErrorIs(t, err, commands.ErrInvalidCredentials)
			case tc.expectErr != nil:
				assert.ErrorIs(t, err, tc.expectErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, "signed", res.AccessToken)
				assert.Equal(t, admin.ID, res.User.ID)
			}
		})
	}

	t.Run("malformed credentials", func(t *testing.T) {
		_, cmds := newAuthMocks(t)

		_, err := cmds.Login(context.Background(), builder.NewUserBuilder().WithPassword("short").BuildLogin())
		assert.ErrorIs(t, err, commands.ErrAuthenticationFailed)
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

func TestAuthCommands_ProvisionAdmin(t *testing.T) {
	t.Run("creates an active admin", func(t *testing.T) {
		m, cmds := newAuthMocks(t)
		m.runInTx()

		var created *user.User
		m.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				created = u
				return nil
			})

		ok, err := cmds.ProvisionAdmin(context.Background(), " Root@Example.com", "s3cret-pass", bcrypt.MinCost)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NotNil(t, created)
		assert.Equal(t, "root@example.com", created.Email().Value())
		assert.Equal(t, user.RoleAdmin, created.Role())
		assert.True(t, created.IsActive())
		assert.Equal(t, loginAt, created.CreatedAt())
		assert.NoError(t, password.Compare(created.PasswordHash(), "s3cret-pass"))
	})

	t.Run("existing account is left alone", func(t *testing.T) {
		m, cmds := newAuthMocks(t)
		m.runInTx()
		m.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("email already registered", pgx.ErrNoRows, infra.KindDuplicateKey))

		ok, err := cmds.ProvisionAdmin(context.Background(), "root@example.com", "s3cret-pass", bcrypt.MinCost)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("database failure", func(t *testing.T) {
		m, cmds := newAuthMocks(t)
		m.runInTx()
		m.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("failed to create user", errors.New("conn reset")))

		ok, err := cmds.ProvisionAdmin(context.Background(), "root@example.com", "s3cret-pass", bcrypt.MinCost)
		assert.False(t, ok)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("weak password never reaches the database", func(t *testing.T) {
		_, cmds := newAuthMocks(t)

		_, err := cmds.ProvisionAdmin(context.Background(), "root@example.com", "short", bcrypt.MinCost)
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

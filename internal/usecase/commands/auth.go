package commands

import (
	"context"
	"errors"
	"log/slog"

	"coupon-service/internal/domain/user"
	reqdto "coupon-service/internal/handler/dto/request"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/password"
	"coupon-service/internal/usecase/queries"
	"coupon-service/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
}

type LoginResult struct {
	User        *queries.AuthorizedUserView
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	// ProvisionAdmin creates an admin account unless an active account already
	// holds the email. It reports whether a row was inserted.
	ProvisionAdmin(ctx context.Context, email, plain string, cost int) (bool, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	tokens    TokenIssuer
	clock     clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, tokens TokenIssuer, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		readStore: readStore,
		tokens:    tokens,
		clock:     clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.Credentials()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	account, err := a.authenticate(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(account.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.tokens.GenerateToken(account.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	// a stale last_login never fails the login
	at := a.clock.Now()
	if err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().RecordLogin(ctx, account.ID, at)
	}); err != nil {
		slog.WarnContext(ctx, "failed to record login", "user_id", account.ID, "error", err)
	}

	return &LoginResult{User: account, AccessToken: token}, nil
}

// authenticate answers ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (a *authCommandsImpl) authenticate(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	account, hashed, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return nil, errs.Mark(err, ErrInvalidCredentials)
	case err != nil:
		return nil, errs.Wrap(err, "failed to look up user")
	case account == nil:
		return nil, ErrUserNotFound
	case !account.IsActive:
		return nil, ErrUserInactive
	}

	err = password.Compare(hashed, credentials.Password().Value())
	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, password.ErrMismatch), errors.Is(err, password.ErrEmpty):
		return nil, ErrInvalidCredentials
	default:
		return nil, errs.Wrap(err, "failed to verify password")
	}
}

func (a *authCommandsImpl) ProvisionAdmin(ctx context.Context, email, plain string, cost int) (bool, error) {
	credentials, err := user.NewCredentials(email, plain)
	if err != nil {
		return false, errs.Wrap(err, "invalid admin credentials")
	}

	hashed, err := password.Hash(credentials.Password().Value(), cost)
	if err != nil {
		return false, err
	}
	admin := user.NewUser(credentials.Email(), hashed, user.RoleAdmin, a.clock.Now())

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, admin)
	})
	switch {
	case err == nil:
		slog.InfoContext(ctx, "admin account created", "user_id", admin.ID(), "email", admin.Email().Value())
		return true, nil
	case infra.IsKind(err, infra.KindDuplicateKey):
		slog.DebugContext(ctx, "admin account already exists", "email", admin.Email().Value())
		return false, nil
	default:
		return false, errs.Wrap(err, "failed to create admin account")
	}
}

//go:build unit || e2e

package builder

import (
	"time"

	"coupon-service/internal/domain/user"
	reqdto "coupon-service/internal/handler/dto/request"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserBuilder describes one account together with the plain password used to log in as it.
type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Password     string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
}

// NewUserBuilder starts from an active admin, test@example.com / password123.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Password:     "password123",
		PasswordHash: "hashed_password",
		Role:         string(user.RoleAdmin),
		Active:       true,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(b.Role)
	if err != nil {
		return nil, err
	}

	u := user.NewUser(email, b.PasswordHash, role, b.CreatedAt)
	if !b.Active {
		u.Deactivate()
	}
	return u, nil
}

func (b *UserBuilder) BuildRow() sqlc.Users {
	ts := pgtype.Timestamptz{Time: b.CreatedAt, Valid: true}
	return sqlc.Users{
		ID:           b.ID,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		Role:         b.Role,
		IsActive:     b.Active,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func (b *UserBuilder) BuildView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       b.ID,
		Email:    b.Email,
		Role:     b.Role,
		IsActive: b.Active,
	}
}

func (b *UserBuilder) BuildLogin() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: b.Email, Password: b.Password}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithPassword(plain string) *UserBuilder {
	b.Password = plain
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.Role = role
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

func (b *UserBuilder) AsInactive() *UserBuilder {
	b.Active = false
	return b
}

package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the acting account: the subject of coupon eligibility and, with an
// operator or admin role, the caller of coupon management.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
}

// NewUser registers an active account that has never logged in.
func NewUser(email Email, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    createdAt,
	}
}

func (u *User) Deactivate() {
	u.isActive = false
}

// RecordLogin keeps the latest instant only; an older at is ignored.
func (u *User) RecordLogin(at time.Time) {
	if u.lastLogin != nil && !at.After(*u.lastLogin) {
		return
	}
	u.lastLogin = &at
}

// CanManageCoupons gates the admin surface.
func (u *User) CanManageCoupons() bool {
	return u.isActive && u.role.AtLeast(RoleAdmin)
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }

package request

import (
	"coupon-service/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255" example:"admin@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
}

// Credentials normalizes the email; lookups compare lower-cased addresses.
func (r LoginRequest) Credentials() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

package dto

import (
	"time"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordRequest payload for password changes.
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// AuthResponse standard response for login. The accessToken key is what the
// existing frontend stores and decodes.
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserSummary is the public projection of an account; the password hash never
// leaves the service.
type UserSummary struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Address string      `json:"address"`
	Role    domain.Role `json:"role"`
}

// NewUserSummary projects a domain user.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    user.Role,
	}
}

package dto

import (
	"time"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse returns the issued token plus the account profile.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Phone      *string     `json:"phone,omitempty"`
	Department *string     `json:"department,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ChangeRoleRequest payload for admin promotion.
type ChangeRoleRequest struct {
	Role domain.Role `json:"role"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Phone:      user.Phone,
		Department: user.Department,
		CreatedAt:  user.CreatedAt,
	}
}

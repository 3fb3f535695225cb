package dto

import (
	"time"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Password   string            `json:"password"`
	Department domain.Department `json:"department"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdateRequest payload.
type ProfileUpdateRequest struct {
	Email      *string            `json:"email"`
	FirstName  *string            `json:"first_name"`
	LastName   *string            `json:"last_name"`
	Department *domain.Department `json:"department"`
}

// CreateAccountRequest provisions an account with an explicit role.
type CreateAccountRequest struct {
	RegisterRequest
	Role        domain.Role `json:"role"`
	IsSuperuser bool        `json:"is_superuser"`
}

// AuthResponse carries a signed token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Role        domain.Role        `json:"role"`
	Department  *domain.Department `json:"department,omitempty"`
	IsSuperuser bool               `json:"is_superuser"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		Department:  user.Department,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt,
	}
}

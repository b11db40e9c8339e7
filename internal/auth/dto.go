package auth

import (
	"github.com/wearhaus/wearhaus-backend/internal/users"
)

// RegisterDTO carries the raw signup form values.
type RegisterDTO struct {
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginDTO carries the login form values.
type LoginDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionDTO is returned on successful register or login.
type SessionDTO struct {
	Token string           `json:"token"`
	User  users.ProfileDTO `json:"user"`
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	IsStaff bool
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients. The JTI keys
// the server-side session entry so logout can revoke the token.
type AccessTokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	IsStaff bool      `json:"is_staff"`
	jwt.RegisteredClaims
}

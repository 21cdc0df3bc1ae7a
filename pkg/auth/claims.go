package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminRole is the only role the gateway accepts.
const AdminRole = "admin"

// AccessTokenPayload captures the data available when minting a JWT.
// Minting lives with the external auth service; the gateway keeps it for
// tests and local tooling.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   string
	Name   string
	Email  string
	JTI    string
}

// AccessTokenClaims represents the typed JWT presented by admin clients.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Name   string    `json:"name,omitempty"`
	Email  string    `json:"email,omitempty"`
	jwt.RegisteredClaims
}

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims are the JWT claims the tree store cares about. The subject is
// the opaque user id that scopes every item operation; no other shape is
// assumed about the identity provider's tokens.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

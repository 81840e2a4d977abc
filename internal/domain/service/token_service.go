package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenService validates the bearer tokens minted by the external identity
// provider. The service itself never issues credentials; it only turns a
// token into a caller identity for the handlers.
type TokenService interface {
	// ValidateToken parses and verifies a signed JWT with the given secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
}

package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens.
// Tokens are self-contained: there is no server-side revocation.
type TokenService interface {
	// Issue signs a token for the user that expires after the configured TTL.
	Issue(userID int64, email string) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	Verify(token string) (*Claims, error)
}

package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTLs. Access tokens are short lived and carry the role,
// refresh tokens only carry identity.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType discriminates access tokens from refresh tokens so one can never
// be replayed where the other is expected.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the payload of every token minted by the service. The subject
// holds the username; the user id travels in its own claim.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the store identifier of the user ("id").
	UserID string `json:"id"`

	// Role is only present on access tokens.
	Role string `json:"role,omitempty"`

	TokenType TokenType `json:"token_type"`
}

// NewAccessClaims builds the claims for an access token.
func NewAccessClaims(
	username, userID, role string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: registered(username, ttl, issuer, now),
		UserID:           userID,
		Role:             role,
		TokenType:        TokenTypeAccess,
	}
}

// NewRefreshClaims builds the claims for a refresh token. Refresh tokens never
// carry authorization data.
func NewRefreshClaims(username, userID string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(username, ttl, issuer, now),
		UserID:           userID,
		TokenType:        TokenTypeRefresh,
	}
}

func registered(subject string, ttl time.Duration, issuer string, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a random identifier for the "jti" claim. Refresh tokens are
// revoked by this value.
func NewJTI() string {
	return uuid.NewString()
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry rejects a token at or after its exp. A token without exp is
// treated as invalid rather than eternal.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateIdentity ensures the subject and user id are present.
func (c *Claims) ValidateIdentity() error {
	if c.Subject == "" || c.UserID == "" {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateType checks the token_type discriminator. An empty expected type
// accepts any token type.
func (c *Claims) ValidateType(expected TokenType) error {
	if expected == "" {
		return nil
	}
	if c.TokenType != expected {
		return ErrWrongType
	}
	return nil
}

// Username returns the subject claim.
func (c *Claims) Username() string { return c.Subject }

// ExpiresIn is the remaining lifetime relative to now, clamped at zero.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}

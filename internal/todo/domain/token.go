package domain

import "time"

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        time.Duration // access token lifetime
	RefreshExpiresIn time.Duration
}

// RevokedToken is a deny-list entry for a refresh token, keyed by its jti.
// The row is useless after ExpiresAt since the token itself is expired by then.
type RevokedToken struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}

package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	c := jwtx.NewAccessClaims("alice", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "admin", 30*time.Minute, "todo-api", now)

	require.Equal(t, "alice", c.Subject)
	require.Equal(t, "alice", c.Username())
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", c.UserID)
	require.Equal(t, "admin", c.Role)
	require.Equal(t, jwtx.TokenTypeAccess, c.TokenType)
	require.Equal(t, "todo-api", c.Issuer)
	require.Equal(t, now.Add(30*time.Minute), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)
}

func TestNewRefreshClaimsCarryNoRole(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewRefreshClaims("alice", "user-1", jwtx.DefaultRefreshTokenTTL, "", now)

	require.Empty(t, c.Role)
	require.Equal(t, jwtx.TokenTypeRefresh, c.TokenType)
	require.Equal(t, 7*24*time.Hour, c.ExpiresAt.Sub(c.IssuedAt.Time))
}

func TestNewJTIUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		jti := jwtx.NewJTI()
		_, dup := seen[jti]
		require.False(t, dup)
		seen[jti] = struct{}{}
	}
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "todo-api",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("todo-api"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("other-api"), jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()
	exp := now.Add(time.Minute)
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}

	t.Run("before exp", func(t *testing.T) {
		require.NoError(t, c.ValidateExpiry(c.ExpiresAt.Add(-time.Nanosecond)))
	})

	t.Run("exactly at exp", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiry(c.ExpiresAt.Time), jwtx.ErrExpired)
	})

	t.Run("after exp", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiry(exp.Add(time.Hour)), jwtx.ErrExpired)
	})

	t.Run("missing exp", func(t *testing.T) {
		empty := &jwtx.Claims{}
		require.ErrorIs(t, empty.ValidateExpiry(now), jwtx.ErrInvalidClaim)
	})
}

func TestValidateIdentity(t *testing.T) {
	t.Run("missing subject", func(t *testing.T) {
		c := &jwtx.Claims{UserID: "user-1"}
		require.ErrorIs(t, c.ValidateIdentity(), jwtx.ErrInvalidClaim)
	})

	t.Run("missing id", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
		require.ErrorIs(t, c.ValidateIdentity(), jwtx.ErrInvalidClaim)
	})

	t.Run("both present", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}, UserID: "user-1"}
		require.NoError(t, c.ValidateIdentity())
	})
}

func TestValidateType(t *testing.T) {
	c := &jwtx.Claims{TokenType: jwtx.TokenTypeRefresh}

	require.NoError(t, c.ValidateType(jwtx.TokenTypeRefresh))
	require.NoError(t, c.ValidateType(""))
	require.ErrorIs(t, c.ValidateType(jwtx.TokenTypeAccess), jwtx.ErrWrongType)
}

func TestExpiresIn(t *testing.T) {
	now := time.Now().UTC()
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(90 * time.Second))},
	}

	require.InDelta(t, float64(90*time.Second), float64(c.ExpiresIn(now)), float64(time.Second))
	require.Zero(t, c.ExpiresIn(now.Add(time.Hour)))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-that-is-definitely-long-enough")

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// testClock is a settable clock shared by a TokenService and its verifier.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTokenService(t *testing.T, st *sqlite.Store, clock *testClock) *TokenService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, "todo-api", jwtx.WithClock(clock.Now))
	require.NoError(t, err)

	return &TokenService{
		Signer:           signer,
		Verifier:         verifier,
		Store:            st,
		Issuer:           "todo-api",
		AccessTTL:        jwtx.DefaultAccessTokenTTL,
		RefreshTTL:       jwtx.DefaultRefreshTokenTTL,
		SingleUseRefresh: true,
		Now:              clock.Now,
	}
}

func createUser(t *testing.T, st *sqlite.Store, username, password, role string) domain.User {
	t.Helper()

	var hash string
	if password != "" {
		var err error
		hash, err = cryptox.HashPassword(password)
		require.NoError(t, err)
	}

	now := time.Now()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

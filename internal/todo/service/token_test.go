package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestAliceScenario(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := &testClock{now: time.Now()}
	tokens := newTokenService(t, st, clock)
	users := &UserService{Store: st}
	creds := &CredentialVerifier{Store: st}

	_, err := users.Register(ctx, todosdk.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  "Secret123!",
		Role:      domain.RoleUser,
	})
	require.NoError(t, err)

	_, err = creds.Verify(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	u, err := creds.Verify(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, 30*time.Minute, pair.ExpiresIn)
	require.Equal(t, 7*24*time.Hour, pair.RefreshExpiresIn)

	clock.Advance(29 * time.Minute)
	claims, err := tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, domain.RoleUser, claims.Role)

	clock.Advance(time.Minute)
	_, err = tokens.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	refreshed, err := tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, refreshed.RefreshToken)

	claims, err = tokens.VerifyAccess(refreshed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
}

func TestRefreshUsesStoredRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := &testClock{now: time.Now()}
	tokens := newTokenService(t, st, clock)

	stored := createUser(t, st, "carol", "Secret123!", domain.RoleAdmin)

	// Pretend the pair was minted while carol was still a plain user.
	stale := stored
	stale.Role = domain.RoleUser
	pair, err := tokens.IssuePair(ctx, stale)
	require.NoError(t, err)

	old, err := tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, old.Role)

	clock.Advance(time.Second)
	refreshed, err := tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	fresh, err := tokens.VerifyAccess(refreshed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, fresh.Role)
	require.NotEqual(t, old.ID, fresh.ID)
	require.True(t, fresh.ExpiresAt.After(old.ExpiresAt.Time))

	refreshClaims, err := tokens.Verifier.Verify(refreshed.RefreshToken, jwtx.TokenTypeRefresh)
	require.NoError(t, err)
	require.Empty(t, refreshClaims.Role)
}

func TestRefreshRejections(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := &testClock{now: time.Now()}
	tokens := newTokenService(t, st, clock)
	u := createUser(t, st, "dave", "Secret123!", domain.RoleUser)

	t.Run("access token is not a refresh token", func(t *testing.T) {
		pair, err := tokens.IssuePair(ctx, u)
		require.NoError(t, err)

		_, err = tokens.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
		require.ErrorIs(t, err, jwtx.ErrWrongType)

		_, err = tokens.VerifyAccess(pair.RefreshToken)
		require.ErrorIs(t, err, jwtx.ErrWrongType)
	})

	t.Run("refresh token is single use", func(t *testing.T) {
		pair, err := tokens.IssuePair(ctx, u)
		require.NoError(t, err)

		_, err = tokens.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		_, err = tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("revoked token", func(t *testing.T) {
		pair, err := tokens.IssuePair(ctx, u)
		require.NoError(t, err)

		require.NoError(t, tokens.Revoke(ctx, pair.RefreshToken))
		require.NoError(t, tokens.Revoke(ctx, pair.RefreshToken))

		_, err = tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		pair, err := tokens.IssuePair(ctx, u)
		require.NoError(t, err)

		clock.Advance(7 * 24 * time.Hour)
		_, err = tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := u
		ghost.ID = "01HZZZZZZZZZZZZZZZZZZZZZZZ"
		pair, err := tokens.IssuePair(ctx, ghost)
		require.NoError(t, err)

		_, err = tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
		require.ErrorIs(t, tokens.Revoke(ctx, "not-a-token"), ErrInvalidRefresh)
	})
}

func TestRefreshReusableWhenNotSingleUse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := &testClock{now: time.Now()}
	tokens := newTokenService(t, st, clock)
	tokens.SingleUseRefresh = false
	u := createUser(t, st, "erin", "Secret123!", domain.RoleUser)

	pair, err := tokens.IssuePair(ctx, u)
	require.NoError(t, err)

	_, err = tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	_, err = tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	// Logout still wins.
	require.NoError(t, tokens.Revoke(ctx, pair.RefreshToken))
	_, err = tokens.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st}

	phone := "0400 000 000"
	req := todosdk.RegisterRequest{
		Username:    "grace",
		Email:       "grace@example.com",
		FirstName:   "Grace",
		LastName:    "Hopper",
		Password:    "Secret123!",
		Role:        domain.RoleAdmin,
		PhoneNumber: &phone,
	}

	u, err := users.Register(ctx, req)
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.NotEqual(t, req.Password, u.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("Secret123!", u.PasswordHash))

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := users.Register(ctx, req)
		require.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("get", func(t *testing.T) {
		got, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "grace", got.Username)
		require.Equal(t, domain.RoleAdmin, got.Role)
		require.NotNil(t, got.PhoneNumber)

		_, err = users.GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("change password", func(t *testing.T) {
		err := users.ChangePassword(ctx, u.ID, "wrong", "NewSecret456!")
		require.ErrorIs(t, err, ErrIncorrectPassword)

		require.NoError(t, users.ChangePassword(ctx, u.ID, "Secret123!", "NewSecret456!"))

		creds := &CredentialVerifier{Store: st}
		_, err = creds.Verify(ctx, "grace", "Secret123!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = creds.Verify(ctx, "grace", "NewSecret456!")
		require.NoError(t, err)

		err = users.ChangePassword(ctx, "missing", "x", "y")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("oauth accounts cannot change password", func(t *testing.T) {
		oauth := createUser(t, st, "oauth_user", "", domain.RoleUser)
		err := users.ChangePassword(ctx, oauth.ID, "", "NewSecret456!")
		require.ErrorIs(t, err, ErrIncorrectPassword)
	})
}

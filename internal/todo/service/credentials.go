package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// CredentialVerifier checks a username and password against the stored
// bcrypt hash.
type CredentialVerifier struct {
	Store store.Store
}

// Verify returns the user when the password matches. Every kind of failure
// (unknown user, wrong password, inactive account, account without a
// password) is reported as ErrInvalidCredentials. Unknown users still pay
// for a bcrypt comparison.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := v.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnPasswordCheck(password)
			l.Info("login failed", slog.String("reason", "unknown_user"))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if !u.HasPassword() {
		cryptox.BurnPasswordCheck(password)
		l.Info("login failed", slog.String("reason", "no_password"), slog.String("user_id", u.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrInvalidHash) {
			l.Error("stored password hash is unreadable", slog.String("user_id", u.ID), slog.Any("error", err))
		} else {
			l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", u.ID))
		}
		return domain.User{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		l.Info("login failed", slog.String("reason", "inactive"), slog.String("user_id", u.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// TokenService mints and rotates access/refresh token pairs.
type TokenService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// SingleUseRefresh records every redeemed refresh token in the deny-list
	// so it cannot be presented again.
	SingleUseRefresh bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IssuePair signs a fresh access token carrying the user's current role and
// a refresh token carrying only the identity.
func (s *TokenService) IssuePair(ctx context.Context, u domain.User) (*domain.TokenPair, error) {
	now := s.now()

	access, err := s.Signer.Sign(jwtx.NewAccessClaims(u.Username, u.ID, u.Role, s.accessTTL(), s.Issuer, now))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign access token", slog.Any("error", err))
		return nil, err
	}

	refresh, err := s.Signer.Sign(jwtx.NewRefreshClaims(u.Username, u.ID, s.refreshTTL(), s.Issuer, now))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign refresh token", slog.Any("error", err))
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        s.accessTTL(),
		RefreshExpiresIn: s.refreshTTL(),
	}, nil
}

// Refresh exchanges a refresh token for a new pair. The user is re-read so
// the new access token reflects the stored role, and a deactivated or
// deleted user cannot refresh. With SingleUseRefresh the presented token is
// burned in the same transaction.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	claims, err := s.Verifier.Verify(refreshToken, jwtx.TokenTypeRefresh)
	if err != nil {
		l.Info("refresh token rejected", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.consume(ctx, tx, claims, now); err != nil {
			return err
		}

		u, err := tx.Users().GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if !u.IsActive {
			return ErrInvalidRefresh
		}

		// Sign inside the transaction so a failure leaves the token unburned.
		pair, err = s.IssuePair(ctx, u)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) {
			l.Info("refresh denied", slog.String("user_id", claims.UserID), slog.String("jti", claims.ID))
		}
		return nil, err
	}

	return pair, nil
}

// consume checks the deny-list and, for single-use refresh, adds the token
// to it.
func (s *TokenService) consume(ctx context.Context, tx store.Tx, claims jwtx.Claims, now time.Time) error {
	if claims.ID == "" {
		if s.SingleUseRefresh {
			return ErrInvalidRefresh
		}
		return nil
	}

	if !s.SingleUseRefresh {
		revoked, err := tx.RevokedTokens().IsRevoked(ctx, claims.ID)
		if err != nil {
			return err
		}
		if revoked {
			return ErrInvalidRefresh
		}
		return nil
	}

	err := tx.RevokedTokens().RevokeToken(ctx, revokedEntry(claims, now))
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrInvalidRefresh
	}
	return err
}

// Revoke puts a refresh token on the deny-list. Revoking the same token
// twice is not an error.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.Verifier.Verify(refreshToken, jwtx.TokenTypeRefresh)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}
	if claims.ID == "" {
		return ErrInvalidRefresh
	}

	err = s.Store.RevokedTokens().RevokeToken(ctx, revokedEntry(claims, s.now()))
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		return err
	}

	slogx.FromContext(ctx).Info("refresh token revoked", slog.String("user_id", claims.UserID))
	return nil
}

// VerifyAccess validates an access token. Callers map every error to 401.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token, jwtx.TokenTypeAccess)
}

func revokedEntry(claims jwtx.Claims, now time.Time) domain.RevokedToken {
	entry := domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		RevokedAt: now,
	}
	if claims.ExpiresAt != nil {
		entry.ExpiresAt = claims.ExpiresAt.Time
	}
	return entry
}

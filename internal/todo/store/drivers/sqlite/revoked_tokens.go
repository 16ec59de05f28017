package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite/gen"
)

type revokedTokensRepo struct {
	q *gen.Queries
}

func (r *revokedTokensRepo) RevokeToken(ctx context.Context, t domain.RevokedToken) error {
	err := r.q.RevokeToken(ctx, gen.RevokeTokenParams{
		Jti:       t.JTI,
		UserID:    t.UserID,
		ExpiresAt: dbTime(t.ExpiresAt),
		RevokedAt: dbTime(t.RevokedAt),
	})
	return mapConstraint(err)
}

func (r *revokedTokensRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.q.IsTokenRevoked(ctx, jti)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredRevokedTokens(ctx, dbTime(now))
}

package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
)

// signingSecret returns the configured HS256 secret. Outside prod a missing
// secret is replaced by a random one, so tokens die with the process.
func signingSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.SecretKey != "" {
		if len(cfg.SecretKey) < jwtx.MinSecretLength {
			return nil, fmt.Errorf("SECRET_KEY must be at least %d bytes: %w", jwtx.MinSecretLength, jwtx.ErrWeakSecret)
		}
		return []byte(cfg.SecretKey), nil
	}

	if cfg.IsProd() {
		return nil, ErrMissingSecret
	}

	secret, err := cryptox.RandomBytes(cryptox.TokenSize512)
	if err != nil {
		return nil, err
	}
	logger.Warn("SECRET_KEY not set, using an ephemeral signing secret; tokens will not survive a restart")
	return secret, nil
}

package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	for _, key := range []string{
		"SECRET_KEY", "TODO_ISSUER", "DATABASE_FILE", "BASE_URL", "CLIENT_URL",
		"GOOGLE_CLIENT_ID", "GOOGLE_REDIRECT_URI", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"REFRESH_SINGLE_USE", "COOKIE_SECURE", "ENV", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "todo-api", cfg.Issuer)
	require.Equal(t, "todo.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
	require.Equal(t, "http://localhost:8080/v1/auth/google/callback", cfg.GoogleRedirectURI)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, cfg.AccessTokenTTL)
	require.Equal(t, jwtx.DefaultRefreshTokenTTL, cfg.RefreshTokenTTL)
	require.True(t, cfg.RefreshSingleUse)
	require.False(t, cfg.CookieSecure)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("ENV", "prod")
	t.Setenv("BASE_URL", "https://todo.example.com/")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REFRESH_TOKEN_TTL", "60")
	t.Setenv("REFRESH_SINGLE_USE", "false")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("GOOGLE_REDIRECT_URI", "")

	cfg := LoadConfig()
	require.True(t, cfg.IsProd())
	require.True(t, cfg.CookieSecure)
	require.Equal(t, "https://todo.example.com", cfg.BaseURL)
	require.Equal(t, "https://todo.example.com/v1/auth/google/callback", cfg.GoogleRedirectURI)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, time.Hour, cfg.RefreshTokenTTL)
	require.False(t, cfg.RefreshSingleUse)
}

func TestSigningSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("configured", func(t *testing.T) {
		secret, err := signingSecret(Config{SecretKey: "0123456789abcdef0123456789abcdef"}, logger)
		require.NoError(t, err)
		require.Equal(t, "0123456789abcdef0123456789abcdef", string(secret))
	})

	t.Run("too short", func(t *testing.T) {
		_, err := signingSecret(Config{SecretKey: "short"}, logger)
		require.ErrorIs(t, err, jwtx.ErrWeakSecret)
	})

	t.Run("required in prod", func(t *testing.T) {
		_, err := signingSecret(Config{Env: "prod"}, logger)
		require.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("ephemeral outside prod", func(t *testing.T) {
		a, err := signingSecret(Config{Env: "dev"}, logger)
		require.NoError(t, err)
		b, err := signingSecret(Config{Env: "dev"}, logger)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(a), jwtx.MinSecretLength)
		require.NotEqual(t, a, b)
	})
}

func TestNewInMemory(t *testing.T) {
	cfg := Config{
		SecretKey:           "0123456789abcdef0123456789abcdef",
		Issuer:              "todo-api",
		DatabaseFile:        ":memory:",
		ClientURL:           "http://localhost:3000",
		Env:                 "dev",
		LogLevel:            "error",
		Port:                0,
		ShutdownGracePeriod: time.Second,
	}

	a, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, a.Handler())
	require.False(t, a.googleOAuth.Enabled())
	require.NoError(t, a.db.Close())
}

func TestRunReturnsWhenContextCancelled(t *testing.T) {
	a, err := New(Config{
		SecretKey:           "0123456789abcdef0123456789abcdef",
		DatabaseFile:        ":memory:",
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/joho/godotenv"
)

var ErrMissingSecret = errors.New("SECRET_KEY is required in prod")

type Config struct {
	SecretKey string // Required in prod: HS256 signing secret, at least 32 bytes
	Issuer    string // Optional: iss claim (default: todo-api)

	DatabaseFile string // Optional: path to SQLite database file (default: ./todo.db)
	BaseURL      string // Optional: public URL of this service (default: http://localhost:<port>)
	ClientURL    string // Optional: where the browser lands after Google sign in (default: http://localhost:3000)

	GoogleClientID     string        // Optional: enables Google sign in when set
	GoogleClientSecret string        // Optional
	GoogleRedirectURI  string        // Optional (default: <BaseURL>/v1/auth/google/callback)
	OAuthTimeout       time.Duration // Optional: per call timeout towards Google (default: 10s)

	AccessTokenTTL   time.Duration // Optional (default: 30m)
	RefreshTokenTTL  time.Duration // Optional (default: 7d)
	RefreshSingleUse bool          // Optional: deny-list redeemed refresh tokens (default: true)
	CookieSecure     bool          // Optional: Secure flag on cookies (default: true in prod)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment after overlaying the dotenv file named by
// ENV_FILE (default .env). Variables already set in the environment win.
func LoadConfig() Config {
	_ = godotenv.Load(getEnvOrDefault("ENV_FILE", ".env"))

	cfg := Config{
		SecretKey:            os.Getenv("SECRET_KEY"),
		Issuer:               getEnvOrDefault("TODO_ISSUER", "todo-api"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "todo.db"),
		BaseURL:              os.Getenv("BASE_URL"),
		ClientURL:            getEnvOrDefault("CLIENT_URL", "http://localhost:3000"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:    os.Getenv("GOOGLE_REDIRECT_URI"),
		OAuthTimeout:         getEnvDurationOrDefault("OAUTH_TIMEOUT", 10*time.Second),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:      getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		RefreshSingleUse:     getEnvBoolOrDefault("REFRESH_SINGLE_USE", true),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	cfg.CookieSecure = getEnvBoolOrDefault("COOKIE_SECURE", cfg.IsProd())

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.GoogleRedirectURI == "" {
		cfg.GoogleRedirectURI = cfg.BaseURL + "/v1/auth/google/callback"
	}

	return cfg
}

func (c Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

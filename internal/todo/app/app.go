package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/graph"
	httpapi "github.com/aussiebroadwan/todo/internal/todo/http"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "todo-api"
)

// Application encapsulates the todo service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	credentials         *service.CredentialVerifier
	tokenService        *service.TokenService
	userService         *service.UserService
	todoService         *service.TodoService
	tagService          *service.TagService
	googleOAuth         *service.GoogleOAuthService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initSigning(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the routed HTTP handler, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until ctx is cancelled or the listener fails, then shuts down
// within the configured grace period.
func (app *Application) Run(ctx context.Context) error {
	app.housekeepingService.Start()

	app.logger.Info("todo service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"google_sign_in", app.googleOAuth.Enabled(),
	)

	serveErr := make(chan error, 1)
	go func() { serveErr <- app.server.ListenAndServe() }()

	var runErr error
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
	}

	if err := app.Shutdown(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// Shutdown drains in-flight requests, stops background work and closes the
// database. It is safe to call once.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Warn("grace period exceeded, closing connections", "error", err)
		_ = app.server.Close()
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	app.logger.Info("todo service stopped")
	return nil
}

func (app *Application) initSigning() error {
	secret, err := signingSecret(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}

	app.signer, err = jwtx.NewSignerHS256(secret)
	if err != nil {
		return err
	}
	app.verifier, err = jwtx.NewVerifierHS256(secret, app.cfg.Issuer)
	return err
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:           app.signer,
		Verifier:         app.verifier,
		Store:            app.db,
		Issuer:           app.cfg.Issuer,
		AccessTTL:        app.cfg.AccessTokenTTL,
		RefreshTTL:       app.cfg.RefreshTokenTTL,
		SingleUseRefresh: app.cfg.RefreshSingleUse,
	}

	app.credentials = &service.CredentialVerifier{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.todoService = &service.TodoService{Store: app.db}
	app.tagService = &service.TagService{Store: app.db}

	app.googleOAuth = service.NewGoogleOAuthService(
		app.db,
		app.tokenService,
		app.cfg.GoogleClientID,
		app.cfg.GoogleClientSecret,
		app.cfg.GoogleRedirectURI,
		app.cfg.OAuthTimeout,
	)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	schema, err := graph.NewSchema(&graph.Resolver{
		Todos: app.todoService,
		Users: app.userService,
		Tags:  app.tagService,
	})
	if err != nil {
		return fmt.Errorf("failed to build graphql schema: %w", err)
	}

	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Credentials = app.credentials
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.TodoService = app.todoService
	router.TagService = app.tagService
	router.GoogleOAuth = app.googleOAuth
	router.Schema = schema
	router.Cookies = httpapi.CookieConfig{
		Secure:    app.cfg.CookieSecure,
		ClientURL: app.cfg.ClientURL,
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

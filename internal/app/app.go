package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/tokenkit/internal/auth"
	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/ferdiebergado/tokenkit/internal/platform/hash"
	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
	"github.com/ferdiebergado/tokenkit/internal/platform/router"
	"github.com/ferdiebergado/tokenkit/internal/platform/validation"
	"github.com/ferdiebergado/tokenkit/internal/user"
)

type App struct {
	server          *http.Server
	config          *config.Config
	stop            context.CancelFunc
	shutdownTimeout time.Duration
	db              *sql.DB
	signer          jwt.Signer
	validator       validation.Validator
	hasher          hash.Hasher
	router          router.Router
	userService     *user.Service
	authn           *auth.Authenticator
}

func (a *App) registerMiddlewares(middlewares []router.Middleware) {
	for _, mw := range middlewares {
		a.router.Use(mw)
	}

	// Every request gets an auth state before any route middleware runs.
	a.router.Use(a.authn.Initialize)
	a.router.Use(a.authn.Session)
}

func (a *App) setupRoutes() {
	userHandler := user.NewHandler()
	mountUserRoutes(a.router, userHandler, a.authn, a.config.Auth)

	authService := auth.NewService(a.userService, a.hasher, a.signer)
	authHandler := auth.NewHandler(authService, a.signer, a.authn)
	mountAuthRoutes(a.router, authHandler, a.authn, a.validator, a.config.Server.MaxBodyBytes)
}

// Handler returns the fully wired request handler.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Start(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// New wires the routes of the service. The user service doubles as the
// user fetcher of the JWT strategy.
func New(cfg *config.Config, provider *Provider, middlewares []router.Middleware) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	userService := user.NewService(user.NewRepository(provider.DB))
	strategy := auth.NewJWTStrategy(provider.Signer, userService)

	var opts []auth.Option
	if provider.Sessions != nil {
		opts = append(opts, auth.WithSessions(provider.Sessions, cfg.Session))
	}

	a := &App{
		config:          cfg,
		db:              provider.DB,
		signer:          provider.Signer,
		validator:       provider.Validator,
		hasher:          provider.Hasher,
		router:          provider.Router,
		userService:     userService,
		authn:           auth.NewAuthenticator(strategy, opts...),
		server:          server,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}

	a.registerMiddlewares(middlewares)
	a.setupRoutes()

	return a
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/ferdiebergado/tokenkit/internal/middleware"
	"github.com/ferdiebergado/tokenkit/internal/pkg/logging"
	"github.com/ferdiebergado/tokenkit/internal/platform/db"
	"github.com/ferdiebergado/tokenkit/internal/platform/router"
	"github.com/ferdiebergado/tokenkit/internal/platform/session"
	"github.com/redis/go-redis/v9"
)

// Run loads the configuration, connects to the backing services and serves
// until ctx is cancelled.
func Run(ctx context.Context) error {
	slog.Info("Initializing...")

	if os.Getenv("ENV") != "production" {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	cfg, err := config.Load("config.json")
	if err != nil {
		return err
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	dbConn, err := db.NewPostgresDB(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	var redisClient *redis.Client
	if cfg.Auth.Session {
		redisClient, err = session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	provider, err := newProvider(cfg, dbConn, redisClient)
	if err != nil {
		return err
	}

	middlewares := []router.Middleware{
		goexpress.RecoverFromPanic,
		middleware.InjectWriter,
		middleware.LogRequest,
		middleware.CORS(cfg.Server.AllowedOrigin),
		middleware.ContextGuard,
	}

	api := New(cfg, provider, middlewares)
	if err := api.Start(ctx); err != nil {
		return err
	}

	return api.Shutdown()
}

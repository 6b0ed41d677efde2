package app

import (
	"database/sql"
	"fmt"

	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/ferdiebergado/tokenkit/internal/platform/hash"
	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
	"github.com/ferdiebergado/tokenkit/internal/platform/router"
	"github.com/ferdiebergado/tokenkit/internal/platform/session"
	"github.com/ferdiebergado/tokenkit/internal/platform/validation"
	"github.com/redis/go-redis/v9"
)

// Provider holds the shared dependencies of the app. Sessions is nil when
// session mode is disabled.
type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Validator validation.Validator
	Hasher    hash.Hasher
	Router    router.Router
	Sessions  session.Store
}

func newProvider(cfg *config.Config, dbConn *sql.DB, redisClient *redis.Client) (*Provider, error) {
	signer, err := jwt.NewGolangJWTSigner(cfg.JWT, cfg.App.Key)
	if err != nil {
		return nil, fmt.Errorf("new jwt signer: %w", err)
	}

	provider := &Provider{
		DB:        dbConn,
		Signer:    signer,
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, cfg.App.Key),
		Router:    router.NewGoexpressRouter(),
		Validator: validation.NewGoPlaygroundValidator(),
	}

	if redisClient != nil {
		provider.Sessions = session.NewRedisStore(redisClient, cfg.Session.KeyPrefix)
	}

	return provider, nil
}

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg *config.Redis) (*redis.Client, error) {
	slog.Info("Connecting to redis...", "addr", cfg.Addr)

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}

	slog.Info("Connected to redis.")
	return client, nil
}

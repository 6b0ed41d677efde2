package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session: not found")

// namespace scopes the ids derived by IDFor.
var namespace = uuid.MustParse("5b0c3a2e-8f1d-4c6b-9e7a-2d4f6a8b0c1e")

// Store persists opaque session data under uuid ids.
type Store interface {
	Put(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// IDFor derives a stable session id from a credential, so repeated logins
// with the same token overwrite one session instead of adding new ones.
func IDFor(credential string) string {
	return uuid.NewSHA1(namespace, []byte(credential)).String()
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Put writes data under id, replacing any previous value and ttl.
func (s *RedisStore) Put(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("session: put %q: %w", id, err)
	}

	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("session: put %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	return data, nil
}

// Delete is idempotent.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	return nil
}

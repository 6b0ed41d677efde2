package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/ferdiebergado/tokenkit/internal/platform/session"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_Lifecycle(t *testing.T) {
	t.Parallel()

	mr, client := newTestRedis(t)
	store := session.NewRedisStore(client, "session:")
	ctx := context.Background()

	data := []byte(`{"id":"42"}`)
	id := session.IDFor("header.payload.signature")
	if err := store.Put(ctx, id, data, time.Hour); err != nil {
		t.Fatalf("store.Put() = %v, want: nil", err)
	}

	if !mr.Exists("session:" + id) {
		t.Fatalf("key %q was not written", "session:"+id)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("store.Get(%q) = %v, want: nil", id, err)
	}
	if string(got) != string(data) {
		t.Errorf("store.Get(%q) = %s, want: %s", id, got, data)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("store.Delete(%q) = %v, want: nil", id, err)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Errorf("second store.Delete(%q) = %v, want: nil", id, err)
	}

	if _, err := store.Get(ctx, id); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("store.Get(%q) after delete = %v, want: %v", id, err, session.ErrNotFound)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	t.Parallel()

	mr, client := newTestRedis(t)
	store := session.NewRedisStore(client, "session:")
	ctx := context.Background()

	id := session.IDFor("token")
	if err := store.Put(ctx, id, []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, id); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("store.Get(%q) after ttl = %v, want: %v", id, err, session.ErrNotFound)
	}
}

func TestRedisStore_PutReplaces(t *testing.T) {
	t.Parallel()

	mr, client := newTestRedis(t)
	store := session.NewRedisStore(client, "session:")
	ctx := context.Background()

	id := session.IDFor("same-token")
	for _, data := range []string{"first", "second"} {
		if err := store.Put(ctx, id, []byte(data), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if keys := mr.Keys(); len(keys) != 1 {
		t.Errorf("mr.Keys() = %v, want one key", keys)
	}

	got, err := store.Get(ctx, id)
	if err != nil || string(got) != "second" {
		t.Errorf("store.Get(%q) = %q, %v, want: %q, nil", id, got, err, "second")
	}

	if err := store.Put(ctx, "not-a-uuid", []byte("x"), time.Hour); err == nil {
		t.Error("store.Put(\"not-a-uuid\") = nil, want: error")
	}
}

func TestIDFor(t *testing.T) {
	t.Parallel()

	a, b := session.IDFor("token-a"), session.IDFor("token-b")
	if a != session.IDFor("token-a") {
		t.Errorf("session.IDFor() is not stable: %q", a)
	}
	if a == b {
		t.Errorf("session.IDFor() = %q for different tokens", a)
	}
}

func TestRedisStore_GetRejectsForeignIDs(t *testing.T) {
	t.Parallel()

	mr, client := newTestRedis(t)
	store := session.NewRedisStore(client, "session:")

	if err := mr.Set("session:not-a-uuid", "x"); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(context.Background(), "not-a-uuid"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("store.Get(%q) = %v, want: %v", "not-a-uuid", err, session.ErrNotFound)
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client, err := session.NewRedisClient(context.Background(), &config.Redis{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("session.NewRedisClient() = %v, want: nil", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := session.NewRedisClient(context.Background(), &config.Redis{Addr: mr.Addr()}); err == nil {
		t.Error("session.NewRedisClient() on closed server = nil, want: error")
	}
}

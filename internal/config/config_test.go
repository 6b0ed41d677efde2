package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ferdiebergado/tokenkit/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KEY", "secret")

	path := writeConfig(t, `{"jwt":{"issuer":"puzzle","audience":"puzzle-clients"}}`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) = %v, want: nil", path, err)
	}

	if cfg.App.Key != "secret" {
		t.Errorf("cfg.App.Key = %q, want: %q", cfg.App.Key, "secret")
	}

	if cfg.JWT.Issuer != "puzzle" || cfg.JWT.Audience != "puzzle-clients" {
		t.Errorf("cfg.JWT = %+v, want issuer %q and audience %q", cfg.JWT, "puzzle", "puzzle-clients")
	}

	if got, want := cfg.JWT.TTL.Duration, 24*time.Hour; got != want {
		t.Errorf("cfg.JWT.TTL = %v, want: %v", got, want)
	}

	if got, want := cfg.JWT.RememberTTL.Duration, 8766*time.Hour; got != want {
		t.Errorf("cfg.JWT.RememberTTL = %v, want: %v", got, want)
	}

	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("cfg.JWT.Algorithm = %q, want: %q", cfg.JWT.Algorithm, "HS256")
	}

	if cfg.Auth.Session {
		t.Errorf("cfg.Auth.Session = %v, want: false", cfg.Auth.Session)
	}

	if cfg.Server.Port != 8888 || cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("cfg.Server = %+v, want port 8888 and a 1MiB body limit", cfg.Server)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KEY", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_SESSION", "true")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	path := writeConfig(t, `{"server":{"port":8080},"jwt":{"ttl":"1h"}}`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) = %v, want: nil", path, err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("cfg.Server.Port = %d, want: %d", cfg.Server.Port, 9090)
	}

	if !cfg.Auth.Session {
		t.Errorf("cfg.Auth.Session = %v, want: true", cfg.Auth.Session)
	}

	if cfg.Redis.Addr != "localhost:6380" {
		t.Errorf("cfg.Redis.Addr = %q, want: %q", cfg.Redis.Addr, "localhost:6380")
	}

	if got, want := cfg.JWT.TTL.Duration, time.Hour; got != want {
		t.Errorf("cfg.JWT.TTL = %v, want: %v", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		t.Setenv("KEY", "")
		os.Unsetenv("KEY")

		path := writeConfig(t, `{}`)
		_, err := config.Load(path)
		if !errors.Is(err, config.ErrMissingKey) {
			t.Errorf("config.Load(%q) = %v, want: %v", path, err, config.ErrMissingKey)
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("KEY", "secret")
		t.Setenv("PORT", "http")

		path := writeConfig(t, `{}`)
		if _, err := config.Load(path); err == nil {
			t.Errorf("config.Load(%q) = nil, want: error", path)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Setenv("KEY", "secret")

		path := writeConfig(t, `{"jwt":`)
		if _, err := config.Load(path); err == nil {
			t.Errorf("config.Load(%q) = nil, want: error", path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := config.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("config.Load() = nil, want: error")
		}
	})
}

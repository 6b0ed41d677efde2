package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	timex "github.com/ferdiebergado/tokenkit/internal/pkg/time"
)

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultRememberTTL = 8766 * time.Hour // 365.25 days
	defaultAlgorithm   = "HS256"

	defaultPort            = 8888
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 10 * time.Second
)

var ErrMissingKey = errors.New("config: signing key is not set")

type Server struct {
	URL             string         `json:"url,omitempty"`
	Port            int            `json:"port,omitempty"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
	AllowedOrigin   string         `json:"allowed_origin,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

// JWT holds the token policy. Expiration is always enforced.
type JWT struct {
	Algorithm   string         `json:"algorithm,omitempty"`
	Issuer      string         `json:"issuer,omitempty"`
	Audience    string         `json:"audience,omitempty"`
	TTL         timex.Duration `json:"ttl,omitempty"`
	RememberTTL timex.Duration `json:"remember_ttl,omitempty"`
}

// Auth configures the authenticate middleware.
type Auth struct {
	Session bool `json:"session,omitempty"`
}

type Session struct {
	CookieName string         `json:"cookie_name,omitempty"`
	MaxAge     timex.Duration `json:"max_age,omitempty"`
	KeyPrefix  string         `json:"key_prefix,omitempty"`
}

type Redis struct {
	Addr string `json:"addr,omitempty"`
	DB   int    `json:"db,omitempty"`
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type App struct {
	Env      string `json:"env,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
	Key      string `json:"-"`
}

type Config struct {
	App     *App     `json:"app,omitempty"`
	Server  *Server  `json:"server,omitempty"`
	DB      *DB      `json:"db,omitempty"`
	JWT     *JWT     `json:"jwt,omitempty"`
	Auth    *Auth    `json:"auth,omitempty"`
	Session *Session `json:"session,omitempty"`
	Redis   *Redis   `json:"redis,omitempty"`
	Argon2  *Argon2  `json:"argon2,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("auth", c.Auth),
		slog.Any("session", c.Session),
		slog.Any("redis", c.Redis),
		slog.Any("argon2", c.Argon2),
	)
}

// Load reads the config file, applies defaults and overrides values from the environment.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	setDefaults(cfg)

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.App.Key == "" {
		return nil, ErrMissingKey
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseCfgFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	configFile, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(configFile, &cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.App == nil {
		cfg.App = &App{}
	}
	if cfg.Server == nil {
		cfg.Server = &Server{}
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Server.ShutdownTimeout.Duration == 0 {
		cfg.Server.ShutdownTimeout.Duration = defaultShutdownTimeout
	}
	if cfg.DB == nil {
		cfg.DB = &DB{}
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "pgx"
	}
	if cfg.JWT == nil {
		cfg.JWT = &JWT{}
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = defaultAlgorithm
	}
	if cfg.JWT.TTL.Duration == 0 {
		cfg.JWT.TTL.Duration = defaultTokenTTL
	}
	if cfg.JWT.RememberTTL.Duration == 0 {
		cfg.JWT.RememberTTL.Duration = defaultRememberTTL
	}
	if cfg.Auth == nil {
		cfg.Auth = &Auth{}
	}
	if cfg.Session == nil {
		cfg.Session = &Session{}
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "sid"
	}
	if cfg.Session.KeyPrefix == "" {
		cfg.Session.KeyPrefix = "session:"
	}
	if cfg.Session.MaxAge.Duration == 0 {
		cfg.Session.MaxAge.Duration = defaultTokenTTL
	}
	if cfg.Redis == nil {
		cfg.Redis = &Redis{}
	}
	if cfg.Argon2 == nil {
		cfg.Argon2 = &Argon2{Memory: 64 * 1024, Iterations: 3, Threads: 2, SaltLength: 16, KeyLength: 32}
	}
}

func overrideWithEnv(cfg *Config) error {
	if key, ok := os.LookupEnv("KEY"); ok {
		cfg.App.Key = key
	}

	if appEnv, ok := os.LookupEnv("ENV"); ok {
		cfg.App.Env = appEnv
	}

	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.App.LogLevel = level
	}

	if url, ok := os.LookupEnv("URL"); ok {
		cfg.Server.URL = url
	}

	if portStr, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("parse PORT %q: %w", portStr, err)
		}
		cfg.Server.Port = port
	}

	if origin, ok := os.LookupEnv("ALLOWED_ORIGIN"); ok {
		cfg.Server.AllowedOrigin = origin
	}

	if addr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.Redis.Addr = addr
	}

	if session, ok := os.LookupEnv("AUTH_SESSION"); ok {
		enabled, err := strconv.ParseBool(session)
		if err != nil {
			return fmt.Errorf("parse AUTH_SESSION %q: %w", session, err)
		}
		cfg.Auth.Session = enabled
	}

	return nil
}

// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Credential backends.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, default=supersecretkey"`

	Session  SessionConfig
	Calendar CalendarConfig
	Storage  StorageConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,   default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type CalendarConfig struct {
	// MonthStep is "exact" or "legacy31".
	MonthStep string `env:"CALENDAR_MONTH_STEP, default=exact"`
}

type StorageConfig struct {
	CredentialBackend string `env:"CREDENTIAL_BACKEND, default=file"`
	CredentialsFile   string `env:"CREDENTIALS_FILE,   default=users.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cycle_tracker"`
}

type RedisConfig struct {
	// Addr empty keeps revoked sessions in process memory.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l and validates enumerated values.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}

	switch cfg.Storage.CredentialBackend {
	case BackendFile, BackendMongo:
	default:
		return nil, fmt.Errorf("unknown CREDENTIAL_BACKEND %q", cfg.Storage.CredentialBackend)
	}
	return &cfg, nil
}

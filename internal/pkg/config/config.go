package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const envProduction = "production"

// ErrEmptySecret is returned when JWT_SECRET is set but blank.
var ErrEmptySecret = errors.New("config: JWT_SECRET must not be empty")

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gradebook"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,       default=localhost:6379"`
	DB       int           `env:"REDIS_DB,         default=0"`
	CacheTTL time.Duration `env:"COURSE_CACHE_TTL, default=5m"`
}

// Production reports whether cookies must be marked Secure.
func (c *Config) Production() bool {
	return c.Env == envProduction
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through an arbitrary lookuper.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, ErrEmptySecret
	}
	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"5000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	DatabaseURL    string `envconfig:"DATABASE_URL" default:"file:cms.db?_pragma=foreign_keys(1)"`

	SecretKey          string `envconfig:"SECRET_KEY" default:"dev-secret-key-change-in-production"`
	JWTSecretKey       string `envconfig:"JWT_SECRET_KEY" default:"jwt-secret-key-change-in-production"`
	JWTAccessExpiresS  int    `envconfig:"JWT_ACCESS_TOKEN_EXPIRES" default:"900"`
	JWTRefreshExpiresS int    `envconfig:"JWT_REFRESH_TOKEN_EXPIRES" default:"604800"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5000"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	UseKafka     bool          `envconfig:"USE_KAFKA" default:"false"`
	KafkaBrokers []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	OutboxPeriod time.Duration `envconfig:"OUTBOX_PERIOD" default:"1s"`
	OutboxLimit  int           `envconfig:"OUTBOX_LIMIT" default:"10"`

	LoginRateLimit float64 `envconfig:"LOGIN_RATE_LIMIT" default:"1"`
	LoginRateBurst int     `envconfig:"LOGIN_RATE_BURST" default:"5"`
	MaxPerPage     int     `envconfig:"MAX_PER_PAGE" default:"0"`
}

// LoadConfig lee .env (si existe) y después el entorno, que tiene prioridad.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// godotenv no pisa variables ya definidas
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", c.DatabaseDriver)
	}
	if c.JWTAccessExpiresS <= 0 || c.JWTRefreshExpiresS <= 0 {
		return errors.New("JWT token lifetimes must be positive")
	}
	if c.OutboxLimit <= 0 {
		return errors.New("OUTBOX_LIMIT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessExpiresS) * time.Second
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.JWTRefreshExpiresS) * time.Second
}

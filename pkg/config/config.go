package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// JwtConfig holds token signing settings.
type JwtConfig struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Issuer string        `envconfig:"ISSUER" default:"currency-proxy"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// AuthConfig holds the admin login credentials. The password is stored as
// a bcrypt hash; a blank hash disables login entirely.
type AuthConfig struct {
	Username     string `envconfig:"USERNAME" default:"admin"`
	PasswordHash string `envconfig:"PASSWORD_HASH"`
}

// FrankfurterConfig holds the upstream endpoint and the cache/resilience
// policy the adapter applies to it.
type FrankfurterConfig struct {
	BaseURL     string        `envconfig:"BASE_URL" required:"true"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`

	LatestTTL  time.Duration `envconfig:"LATEST_TTL" default:"10m"`
	ConvertTTL time.Duration `envconfig:"CONVERT_TTL" default:"5m"`
	HistoryTTL time.Duration `envconfig:"HISTORY_TTL" default:"1h"`

	MaxRetries  int           `envconfig:"MAX_RETRIES" default:"3"`
	BackoffBase time.Duration `envconfig:"BACKOFF_BASE" default:"1s"`

	BreakerThreshold int           `envconfig:"BREAKER_THRESHOLD" default:"5"`
	BreakerOpenFor   time.Duration `envconfig:"BREAKER_OPEN_FOR" default:"30s"`

	ExcludedCurrencies []string `envconfig:"EXCLUDED_CURRENCIES" default:"TRY,PLN,THB,MXN"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"currency-proxy"`
}

// AppConfig is the full application configuration, populated from the
// environment (optionally seeded from a .env file).
type AppConfig struct {
	Server      ServerConfig      `envconfig:"SERVER"`
	Jwt         JwtConfig         `envconfig:"JWT"`
	Auth        AuthConfig        `envconfig:"AUTH"`
	Frankfurter FrankfurterConfig `envconfig:"FRANKFURTER"`
	Log         LogConfig         `envconfig:"LOG"`
}

// Load reads configuration from the environment. Startup fails when a
// required value (upstream base URL, JWT secret) is missing.
func Load(logger *slog.Logger) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	logger.Info("App config loaded",
		"frankfurter_base_url", cfg.Frankfurter.BaseURL,
		"latest_ttl", cfg.Frankfurter.LatestTTL,
		"max_retries", cfg.Frankfurter.MaxRetries,
		"breaker_threshold", cfg.Frankfurter.BreakerThreshold,
	)
	return &cfg, nil
}

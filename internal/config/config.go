// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevSecretKey is the fallback signing key. It is fine for local use only.
const DevSecretKey = "dev-insecure-secret-change-me"

// Config holds every setting the server reads at startup.
type Config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	// ShutdownTimeout bounds graceful shutdown after a signal.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBDSN    string `env:"DB_DSN" envDefault:"events.db"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	SecretKey string `env:"SECRET_KEY" envDefault:"dev-insecure-secret-change-me"`
	BaseURL   string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	MediaDir       string `env:"MEDIA_DIR" envDefault:"media"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	Language  string `env:"LANGUAGE" envDefault:"en-US"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	EmailBackend      string `env:"EMAIL_BACKEND" envDefault:"console"`
	EmailHost         string `env:"EMAIL_HOST"`
	EmailPort         int    `env:"EMAIL_PORT" envDefault:"587"`
	EmailHostUser     string `env:"EMAIL_HOST_USER"`
	EmailHostPassword string `env:"EMAIL_HOST_PASSWORD"`
	EmailFrom         string `env:"EMAIL_FROM" envDefault:"no-reply@localhost"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads an optional .env file and then parses the environment into a
// Config. Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or pgx, got %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory or redis, got %q", c.SessionBackend)
	}
	switch c.EmailBackend {
	case "console":
	case "smtp":
		if c.EmailHost == "" {
			return errors.New("EMAIL_HOST is required when EMAIL_BACKEND=smtp")
		}
	default:
		return fmt.Errorf("EMAIL_BACKEND must be console or smtp, got %q", c.EmailBackend)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// UsesDevSecret reports whether the signing key was left at its default.
func (c *Config) UsesDevSecret() bool {
	return c.SecretKey == DevSecretKey
}

// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port           string `env:"PORT"             envDefault:"5175"`
	LogLevel       string `env:"LOG_LEVEL"        envDefault:"info"`
	DBPath         string `env:"DB_PATH"          envDefault:"./data/app.db"`
	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"dicegrid_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	Production     bool   `env:"PRODUCTION"`
	DailyTZ        string `env:"DAILY_TZ"         envDefault:"Local"`
	WordsFile      string `env:"WORDS_FILE"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that env tags cannot express.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTExpiresDays <= 0 {
		return fmt.Errorf("JWT_EXPIRES_DAYS must be positive, got %d", c.JWTExpiresDays)
	}
	if c.Production && c.JWTSecret == "dev_secret_change_me" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("DAILY_TZ: %w", err)
	}
	return nil
}

// Location resolves DailyTZ; the daily puzzle rolls over at midnight there.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DailyTZ)
}

// TokenTTL is the lifetime of issued auth tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

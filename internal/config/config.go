// Package config loads application configuration from the environment.
//
// A .env file is loaded first if one exists (convenient for local
// development), then the real environment is parsed into the Config struct
// via struct tags. Real env vars always win over .env values because
// godotenv never overrides variables that are already set.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the full application configuration.
//
// None of the SMTP fields are required: a deployment without them serves
// HTTP normally, and the daily email job logs a skip instead of sending.
// This is deliberate — misconfigured email must never take the API down.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8000"`
	DBPath string `env:"DB_PATH" envDefault:"data/words.db"`

	// Browser origins allowed to call the API (comma-separated).
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://www.hiblazar.com,http://127.0.0.1:5500"`

	SMTP SMTPConfig
}

// SMTPConfig holds the email delivery settings.
type SMTPConfig struct {
	Server   string `env:"SMTP_SERVER" envDefault:"smtp.hostinger.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	Sender   string `env:"SENDER_EMAIL"`
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

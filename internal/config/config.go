package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// defaultTimezone is the civil timezone all date computations use when
// TIMEZONE is not set.
const defaultTimezone = "Europe/Rome"

type Config struct {
	TelegramToken string
	SupabaseURL   string
	SupabaseKey   string
	Timezone      string
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		Timezone:      os.Getenv("TIMEZONE"),
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	return cfg, nil
}

// Location resolves the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultDBPath  = "weather_data.db"
	defaultTimeout = "10s"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is not set")

// Config holds runtime settings for the CLI.
type Config struct {
	APIKey      string
	BaseURL     string
	DBPath      string
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment, after loading .env if one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	cfg := &Config{
		APIKey:  getenvDefault("OPENWEATHER_API_KEY", os.Getenv("OWM_API_KEY")),
		BaseURL: getenvDefault("OPENWEATHER_BASE_URL", defaultBaseURL),
		DBPath:  getenvDefault("DB_PATH", defaultDBPath),
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", defaultTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive, got %s", timeout)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// Validate reports settings a live lookup can't do without.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

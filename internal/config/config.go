// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrNoAPIKey is returned when the provider credential is not configured.
var ErrNoAPIKey = errors.New("WEATHER_API_KEY is not set")

// DefaultAPIURL is the weather provider base URL.
const DefaultAPIURL = "https://api.weatherapi.com/v1"

// Config contains application settings.
type Config struct {
	APIKey   string
	APIURL   string
	Port     string
	Origin   string
	LogLevel string

	// RateLimitRPS of zero disables outbound rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the optional .env file and then the process environment.
// Variables already present in the environment take precedence over .env values.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env file is fine, settings may come from the environment only
	err := godotenv.Load(envFiles...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	c := &Config{
		APIKey:   os.Getenv("WEATHER_API_KEY"),
		APIURL:   getEnv("WEATHER_API_URL", DefaultAPIURL),
		Port:     getEnv("PORT", "8080"),
		Origin:   getEnv("ORIGIN", "*"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	c.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, err
	}

	c.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 1)
	if err != nil {
		return nil, err
	}

	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	if c.RateLimitRPS < 0 {
		return nil, errors.New("RATE_LIMIT_RPS should not be negative")
	}

	if c.RateLimitBurst < 1 {
		return nil, errors.New("RATE_LIMIT_BURST should be more than 0")
	}

	return c, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %w", key, err)
	}

	return i, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %w", key, err)
	}

	return f, nil
}

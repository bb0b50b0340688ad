// Package config handles application configuration from environment
// variables, with an optional config.yml overlay.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port string `yaml:"port" validate:"required"`
	Env  string `yaml:"env"`

	// ProviderAPIKey is the open-data AccountKey. Empty means the catalog
	// degrades to the fallback stop list and arrivals return provider errors.
	ProviderAPIKey string `yaml:"providerApiKey"`
	StopsURL       string `yaml:"stopsURL" validate:"omitempty,url"`
	ArrivalsURL    string `yaml:"arrivalsURL" validate:"omitempty,url"`

	HTTPTimeout     time.Duration `yaml:"-"`
	ArrivalCacheTTL time.Duration `yaml:"-"`
	RefreshInterval time.Duration `yaml:"-"`

	FavoritesPath   string  `yaml:"favoritesPath"`
	DefaultRadiusKm float64 `yaml:"defaultRadiusKm" validate:"gt=0"`
}

// Load reads configuration from .env and environment variables with sensible
// defaults, then overlays config.yml when present.
func Load() (*Config, error) {
	// .env is optional; ignore if missing.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		Env:             getEnv("ENV", "development"),
		ProviderAPIKey:  getEnv("LTA_API_KEY", ""),
		StopsURL:        getEnv("STOPS_URL", ""),
		ArrivalsURL:     getEnv("ARRIVALS_URL", ""),
		HTTPTimeout:     getDurationEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
		ArrivalCacheTTL: getDurationEnv("ARRIVAL_CACHE_TTL_SECONDS", 15) * time.Second,
		RefreshInterval: getDurationEnv("REFRESH_INTERVAL_SECONDS", 30) * time.Second,
		FavoritesPath:   getEnv("FAVORITES_PATH", "favorites.json"),
		DefaultRadiusKm: getFloatEnv("DEFAULT_RADIUS_KM", 2),
	}

	if err := overlayYAML(cfg, getEnv("CONFIG_FILE", "config.yml")); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// overlayYAML applies config.yml on top of the env-derived values. A missing
// file is fine; a malformed one is not.
func overlayYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

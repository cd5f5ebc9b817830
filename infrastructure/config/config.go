package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultAPIURL is used when no remote service location is configured.
const DefaultAPIURL = "http://localhost:5000/api"

// Config holds all application configuration
type Config struct {
	// Remote service
	APIURL      string
	HTTPTimeout time.Duration

	// Local state
	StateDir string

	// Environment
	Environment string

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIURL:      getEnv("SAYITLOUD_API_URL", DefaultAPIURL),
		HTTPTimeout: time.Duration(getEnvInt("SAYITLOUD_HTTP_TIMEOUT_MS", 60000)) * time.Millisecond,
		StateDir:    getEnv("SAYITLOUD_STATE_DIR", defaultStateDir()),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("SAYITLOUD_API_URL must not be empty")
	}
	if c.StateDir == "" {
		return fmt.Errorf("SAYITLOUD_STATE_DIR must not be empty")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// defaultStateDir resolves the per-user directory holding persisted client
// state (session token and identity).
func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sayitloud")
	}
	return ".sayitloud"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

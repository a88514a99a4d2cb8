package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// BackendConfig holds the supply-chain backend connection settings
type BackendConfig struct {
	BaseURL   string
	Timeout   time.Duration
	PageLimit int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// ViewConfig holds graph view state settings
type ViewConfig struct {
	TTL time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	Backend BackendConfig
	Server  ServerConfig
	View    ViewConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Backend: BackendConfig{
			BaseURL:   getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
			Timeout:   getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			PageLimit: getEnvAsInt("PAGE_LIMIT", 5),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8085"),
			Env:  getEnv("APP_ENV", "development"),
		},
		View: ViewConfig{
			TTL: getEnvAsDuration("VIEW_TTL", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "graphview"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("backend_base_url", c.Backend.BaseURL),
		zap.Duration("backend_timeout", c.Backend.Timeout),
		zap.Int("page_limit", c.Backend.PageLimit),
		zap.Duration("view_ttl", c.View.TTL),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

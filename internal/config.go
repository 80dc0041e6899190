package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the courier binary needs, sourced from the
// environment with an optional .env file for development.
type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	Broker   BrokerConfig
	Courier  CourierConfig
}

// BrokerConfig configures the connection to the remote shipping broker.
type BrokerConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CourierConfig carries the default service-selection parameters used by
// one-shot CLI runs.
type CourierConfig struct {
	Service     string
	LabelFormat string
}

// NewConfig loads configuration from the environment.
func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	if err := godotenv.Load(); err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		Broker: BrokerConfig{
			BaseURL: getEnv("BROKER_URL", "https://developers.baselinker.com/recruitment/api"),
			APIKey:  getEnv("BROKER_API_KEY", ""),
			Timeout: getEnvDuration("BROKER_TIMEOUT", 30*time.Second),
		},
		Courier: CourierConfig{
			Service:     getEnv("COURIER_SERVICE", "PPTT"),
			LabelFormat: getEnv("COURIER_LABEL_FORMAT", "PDF"),
		},
	}

	// Validate env
	if cfg.Env != "dev" && cfg.Env != "prod" {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Broker.APIKey == "" {
		return nil, fmt.Errorf("BROKER_API_KEY must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

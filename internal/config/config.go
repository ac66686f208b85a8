package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	CORS        CORSConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
	NewRelic    NewRelicConfig
	Demo        DemoConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level string // debug, info, warn or error
}

// CORSConfig holds cross-origin configuration.
type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig holds Redis configuration. Redis is optional; it backs request
// idempotency only.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// IdempotencyConfig holds Idempotency-Key replay settings.
type IdempotencyConfig struct {
	TTL time.Duration
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// DemoConfig holds the pacing of the console walkthrough.
type DemoConfig struct {
	SearchDelayMin time.Duration
	SearchDelayMax time.Duration
	StepDelay      time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Idempotency: IdempotencyConfig{
			TTL: getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "cab-booking-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Demo: DemoConfig{
			SearchDelayMin: getDurationEnv("DEMO_SEARCH_DELAY_MIN", 2*time.Second),
			SearchDelayMax: getDurationEnv("DEMO_SEARCH_DELAY_MAX", 5*time.Second),
			StepDelay:      getDurationEnv("DEMO_STEP_DELAY", 2*time.Second),
		},
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT must not be empty"))
	}
	if c.NewRelic.Enabled && c.NewRelic.LicenseKey == "" {
		errs = append(errs, errors.New("NEW_RELIC_LICENSE_KEY is required when NEW_RELIC_ENABLED is true"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required when REDIS_ENABLED is true"))
	}
	if c.Demo.SearchDelayMin > c.Demo.SearchDelayMax {
		errs = append(errs, fmt.Errorf("DEMO_SEARCH_DELAY_MIN (%s) exceeds DEMO_SEARCH_DELAY_MAX (%s)",
			c.Demo.SearchDelayMin, c.Demo.SearchDelayMax))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated variable, ignoring empty entries.
func getListEnv(key string, defaultValue []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

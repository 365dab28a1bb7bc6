// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"flightlookup-service/internal/domain/entity"

	"github.com/joho/godotenv"
)

// Lookup modes
const (
	ModeLive = "live"
	ModeMock = "mock"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion       string
	LogLevel         string
	MetricsNamespace string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Aviation data provider
	LookupMode      string
	APIKey          string
	APIBaseURL      string
	UpstreamTimeout time.Duration

	// PostgreSQL airport directory (optional)
	PostgresDSN string

	// MongoDB search history (optional)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Redis batch cache (optional)
	RedisAddr        string
	RedisPassword    string
	UpstreamCacheTTL time.Duration

	// NATS search events (optional)
	NatsURL string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	apiKey := getEnv("AVIATIONSTACK_API_KEY", getEnv("VITE_AVIATION_STACK_KEY", ""))

	defaultMode := ModeMock
	if apiKey != "" {
		defaultMode = ModeLive
	}

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightlookup"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		LookupMode:      strings.ToLower(getEnv("LOOKUP_MODE", defaultMode)),
		APIKey:          apiKey,
		APIBaseURL:      getEnv("AVIATIONSTACK_BASE_URL", "http://api.aviationstack.com/v1"),
		UpstreamTimeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT", 15)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flightlookup"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		UpstreamCacheTTL: getEnvAsDuration("UPSTREAM_CACHE_TTL", 5*time.Minute),

		NatsURL: getEnv("NATS_URL", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the lookup mode and, in live mode, the provider credentials
func (c *Config) Validate() error {
	switch c.LookupMode {
	case ModeLive:
		if c.APIKey == "" {
			return fmt.Errorf("%w: set AVIATIONSTACK_API_KEY or use LOOKUP_MODE=mock", entity.ErrMissingCredentials)
		}
	case ModeMock:
	default:
		return fmt.Errorf("%w: unknown LOOKUP_MODE %q", entity.ErrConfiguration, c.LookupMode)
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s") or whole seconds ("90")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/listview"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

type Config struct {
	APIBaseURL           string        // Lead API base URL (default: http://localhost:8080)
	APITimeout           time.Duration // Per-call timeout against the lead API (default: 10s)
	DatabaseFile         string        // Path to SQLite database file (default: ./leadfront.db)
	MasterKeyPath        string        // Optional: path to the key that seals stored tokens
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 3000)
	SecureCookies        bool          // Mark the session cookie Secure (default: true outside dev)
	SessionTTL           time.Duration // Sliding browser session lifetime (default: 24h)
	SearchDebounce       time.Duration // Quiet period before a search runs (default: 500ms)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		APIBaseURL:           getEnvOrDefault("API_BASE_URL", leadsdk.DefaultBaseURL),
		APITimeout:           getEnvDurationOrDefault("API_TIMEOUT", leadsdk.DefaultTimeout),
		DatabaseFile:         getEnvOrDefault("LEADFRONT_DATABASE_FILE", "leadfront.db"),
		MasterKeyPath:        os.Getenv("LEADFRONT_MASTER_KEY_PATH"), // Optional
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3000),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", service.DefaultSessionTTL),
		SearchDebounce:       getEnvDurationOrDefault("SEARCH_DEBOUNCE", listview.DefaultQuietPeriod),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
	cfg.SecureCookies = getEnvBoolOrDefault("SECURE_COOKIES", cfg.Env != "dev")

	return cfg
}

// StubConfig configures the development stand-in for the lead API.
type StubConfig struct {
	Port          int           // HTTP port (default: 8080)
	AdminEmail    string        // Admin login (default: admin@example.com)
	AdminPassword string        // Required
	JWTSecret     string        // Optional: HS256 secret, random when unset
	TokenTTL      time.Duration // Token lifetime (default: 24h)
	Env           string
	LogLevel      string
	LogFormat     string
}

func LoadStubConfig() StubConfig {
	return StubConfig{
		Port:          getEnvIntOrDefault("STUB_PORT", 8080),
		AdminEmail:    getEnvOrDefault("STUB_ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: os.Getenv("STUB_ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("STUB_JWT_SECRET"),
		TokenTTL:      getEnvDurationOrDefault("STUB_TOKEN_TTL", 24*time.Hour),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "500ms")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are milliseconds, the unit the debounce is usually quoted in
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	return defaultValue
}

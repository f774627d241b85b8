package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: uriadmin)

	RSAKeyFile string // Path to the PEM-encoded RSA signing key (default: ./private.pem)
	RSABits    int    // RSA key size when generating a fresh key (default: 2048)

	DatabaseFile string // Path to SQLite database file (default: ./uriadmin.db)
	RedisAddr    string // Redis address for the lockout counter (default: localhost:6379)

	AccessTTL  time.Duration // Access token lifetime (default: 30m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 168h)

	LockoutThreshold int           // Failed logins before lockout (default: 5)
	LockoutWindow    time.Duration // Sliding failure window (default: 5m)

	// BootstrapPassword seeds the first admin account when the user table
	// is empty. Change it immediately after first login.
	BootstrapPassword string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:       getEnvOrDefault("AUTH_ISSUER", "uriadmin"),
		RSAKeyFile:   getEnvOrDefault("AUTH_RSA_KEY_FILE", "private.pem"),
		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "uriadmin.db"),
		RedisAddr:    getEnvOrDefault("AUTH_REDIS_ADDR", "localhost:6379"),

		AccessTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TTL", 30*time.Minute),
		RefreshTTL: getEnvDurationOrDefault("AUTH_REFRESH_TTL", 168*time.Hour),

		LockoutThreshold: getEnvIntOrDefault("AUTH_LOCKOUT_THRESHOLD", 5),
		LockoutWindow:    getEnvDurationOrDefault("AUTH_LOCKOUT_WINDOW", 5*time.Minute),

		BootstrapPassword: getEnvOrDefault("AUTH_BOOTSTRAP_PASSWORD", "abcd123456"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if rsaBitsStr := os.Getenv("AUTH_RSA_BITS"); rsaBitsStr != "" {
		if bits, err := strconv.Atoi(rsaBitsStr); err == nil {
			cfg.RSABits = bits
		}
		// If parsing fails, RSABits remains 0 (will use default in KeyManager)
	}

	return cfg
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

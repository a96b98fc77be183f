package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Session   SessionConfig
	Benchmark BenchmarkConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds upload-session configuration.
// FernetKey is the base64 key used to sign session tokens; when empty, a
// fresh key is generated at startup and tokens do not survive restarts.
type SessionConfig struct {
	TTL       time.Duration
	FernetKey string
}

// BenchmarkConfig holds benchmark price configuration.
// DefaultSymbol is used when a comparison request names no benchmark.
// RefreshSchedule is a cron expression for the daily price refresh.
type BenchmarkConfig struct {
	DefaultSymbol   string
	RefreshSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	sessionTTLHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/benchfolio.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Session: SessionConfig{
			TTL:       time.Duration(sessionTTLHours) * time.Hour,
			FernetKey: getEnv("SESSION_FERNET_KEY", ""),
		},
		Benchmark: BenchmarkConfig{
			DefaultSymbol:   getEnv("BENCHMARK_SYMBOL", "^GSPC"),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "0 6 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

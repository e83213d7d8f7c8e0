package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// HTTP API
	HTTPAddr   string
	CORSOrigin string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Storage
	// StorageDriver selects the persistence backend: "postgres", "redis",
	// "sqlite", or "auto" (postgres when DATABASE_URL is set, then redis
	// when REDIS_URL is set, otherwise local sqlite).
	StorageDriver string
	DatabaseURL   string
	DBMaxConns    int
	SQLitePath    string
	RedisURL      string

	// Events
	RabbitMQURL string

	// Purge
	PurgeInterval time.Duration

	// CLI
	UserID string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		HTTPAddr:   getEnv("HTTP_ADDR", "0.0.0.0:4000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getDurationEnv("TOKEN_TTL", 7*24*time.Hour),

		StorageDriver: getEnv("STORAGE_DRIVER", "auto"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBMaxConns:    getIntEnv("DB_MAX_CONNS", 10),
		SQLitePath:    getEnv("SQLITE_PATH", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		PurgeInterval: getDurationEnv("PURGE_INTERVAL", time.Hour),

		UserID: getEnv("VOXPLAN_USER_ID", ""),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Driver resolves the effective storage driver.
func (c *Config) Driver() string {
	if c.StorageDriver != "" && c.StorageDriver != "auto" {
		return c.StorageDriver
	}
	if c.DatabaseURL != "" {
		return "postgres"
	}
	if c.RedisURL != "" {
		return "redis"
	}
	return "sqlite"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

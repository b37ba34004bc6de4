package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	AppBaseURL  string

	AllowedOrigins []string

	MongoURI     string
	DatabaseName string
	MaxPoolSize  uint64
	MinPoolSize  uint64

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	StorageProvider  string
	StorageRegion    string
	StorageAccountID string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StoragePublicURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	TrashRetentionDays int
	CleanupInterval    time.Duration

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads .env if present and builds the configuration from the
// environment with sane defaults for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:3000"),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),

		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DB_NAME", "adcraft"),
		MaxPoolSize:  getEnvUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:  getEnvUint64("MONGO_MIN_POOL_SIZE", 10),

		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "r2"),
		StorageRegion:    getEnv("STORAGE_REGION", "auto"),
		StorageAccountID: getEnv("STORAGE_ACCOUNT_ID", ""),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "adcraft"),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@adcraft.local"),

		TrashRetentionDays: getEnvInt("TRASH_RETENTION_DAYS", 30),
		CleanupInterval:    getEnvDuration("CLEANUP_INTERVAL", time.Hour),

		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

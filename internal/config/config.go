package config

import (
	"os"
	"strconv"
	"time"

	"workhub-service/internal/pkg/token"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Stores
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Session tokens
	Token token.Config

	// Seed accounts
	SeedAccounts   bool
	SeedPassword   string
	SeedMailDomain string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),

		Token: token.Config{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", "workhub"),
			TTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
		},

		SeedAccounts:   getEnvBool("SEED_ACCOUNTS", true),
		SeedPassword:   getEnv("SEED_PASSWORD", "password123"),
		SeedMailDomain: getEnv("SEED_MAIL_DOMAIN", "workhub.local"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

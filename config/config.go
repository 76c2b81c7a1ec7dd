package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDriver    string
	SQLitePath  string
	DBLogLevel  string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	RedisURL    string
	CorsOrigins []string

	AdminUsername string
	AdminPassword string
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("⚠️  invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

// ParseCorsOrigins splits a comma separated origin list; empty means "*".
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := &Config{
		Port:          envOrDefault("PORT", "8080"),
		DBDriver:      strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
		SQLitePath:    envOrDefault("SQLITE_PATH", "villa.db"),
		DBLogLevel:    strings.ToLower(envOrDefault("DB_LOG_LEVEL", "info")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AccessTTL:     envDuration("ACCESS_TOKEN_TTL", 60*time.Minute),
		RefreshTTL:    envDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		CorsOrigins:   ParseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		AdminUsername: envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
	}

	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, errors.New("DB_DRIVER must be one of mysql, postgres, sqlite")
	}
	return cfg, nil
}

// RequireJWTSecret fails when no signing secret is configured.
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	return nil
}

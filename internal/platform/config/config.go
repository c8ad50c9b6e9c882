package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// DatabaseURL is the pooled connection string used by the application.
	DatabaseURL string
	// DirectURL bypasses any connection pooler; migrations prefer it when set.
	DirectURL     string
	Port          string
	Environment   string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      slog.Level

	RunMigrations  bool
	MigrationsPath string
	DBQueryTimeout time.Duration

	// View cache. An empty RedisAddr selects the in-process cache; a zero TTL disables caching.
	RedisAddr     string
	RedisDB       int
	ViewCacheTTL  time.Duration
	ViewCacheSize int

	// RateLimit uses the ulule/limiter format, e.g. "60-M".
	RateLimit string
	// AuthJWTSecret enables bearer-token auth on /api/v1 when non-empty.
	AuthJWTSecret   string
	FrontendBaseURL string
}

// MigrationURL returns the connection string migrations should run against.
func (c *Config) MigrationURL() string {
	if c.DirectURL != "" {
		return c.DirectURL
	}
	return c.DatabaseURL
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DIRECT_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DB_QUERY_TIMEOUT", "5s")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("VIEW_CACHE_TTL", "60s")
	viper.SetDefault("VIEW_CACHE_SIZE", 256)
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	// Values from .env were exported above, so actual environment variables win.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		slog.Warn("Neither PGSQL_URL nor DATABASE_URL is set.")
	}
	cfg.DirectURL = viper.GetString("DIRECT_URL")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	cfg.Environment = strings.ToLower(viper.GetString("APP_ENV"))
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION") || cfg.Environment == "production"
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		slog.Warn("Invalid LOG_LEVEL, defaulting to info", slog.String("value", viper.GetString("LOG_LEVEL")))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.DBQueryTimeout = durationOrDefault("DB_QUERY_TIMEOUT", 5*time.Second)

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.ViewCacheTTL = durationOrDefault("VIEW_CACHE_TTL", time.Minute)
	cfg.ViewCacheSize = viper.GetInt("VIEW_CACHE_SIZE")
	if cfg.ViewCacheSize <= 0 {
		cfg.ViewCacheSize = 256
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AuthJWTSecret = viper.GetString("AUTH_JWT_SECRET")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}

// durationOrDefault parses key as a Go duration ("5s", "1m"), falling back to def.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			slog.Warn("Invalid duration, using default",
				slog.String("key", key), slog.String("value", raw), slog.Duration("default", def))
		}
		return def
	}
	return d
}

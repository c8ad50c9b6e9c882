package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/loan_tracker/internal/cache"
	"github.com/SscSPs/loan_tracker/internal/core/services"
	"github.com/SscSPs/loan_tracker/internal/handlers"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/SscSPs/loan_tracker/internal/platform/config"
	"github.com/SscSPs/loan_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/loan_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	connectTimeout     = 10 * time.Second
	slowQueryThreshold = 250 * time.Millisecond
)

// @title Loan Tracker API
// @version 1.0
// @description Create, browse and maintain loan records.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.RunMigrations {
		if err := runMigrations(cfg, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, database.PoolOptions{
		Logger:             logger,
		SlowQueryThreshold: slowQueryThreshold,
		ConnectTimeout:     connectTimeout,
		SkipPing:           !cfg.EnableDBCheck,
	})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	views, closeViews, err := newViewCache(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize view cache", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeViews()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), middleware.Recovery(handlers.RenderPanicPage))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	r.Use(cors.New(corsConfig))

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.DBQueryTimeout)
	serviceContainer := services.NewServiceContainer(cfg, repos, views)

	handlers.RegisterRoutes(r, cfg, serviceContainer, views, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Environment))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies every pending "up" migration over a temporary
// database/sql connection, preferring the direct (non-pooled) URL.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.MigrationURL())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newViewCache picks the page cache backend: Redis when configured, an
// in-process LRU otherwise, nothing when the TTL is zero.
func newViewCache(cfg *config.Config, logger *slog.Logger) (cache.ViewCache, func(), error) {
	if cfg.ViewCacheTTL == 0 {
		logger.Info("View cache disabled")
		return cache.Disabled{}, func() {}, nil
	}
	if cfg.RedisAddr == "" {
		logger.Info("Using in-memory view cache", slog.Int("size", cfg.ViewCacheSize), slog.Duration("ttl", cfg.ViewCacheTTL))
		return cache.NewMemory(cfg.ViewCacheSize, cfg.ViewCacheTTL), func() {}, nil
	}

	client, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using Redis view cache", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.ViewCacheTTL))
	return cache.NewRedis(client, cfg.ViewCacheTTL), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}, nil
}

package handlers

import (
	"github.com/SscSPs/loan_tracker/cmd/docs"
	"github.com/SscSPs/loan_tracker/internal/cache"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/middleware"
	"github.com/SscSPs/loan_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	views cache.ViewCache,
	rateLimiter *limiter.Limiter,
) {
	var mutation []gin.HandlerFunc
	if rateLimiter != nil {
		mutation = append(mutation, middleware.RateLimit(rateLimiter))
	}

	RegisterHealthRoutes(r, services.Health, !cfg.IsProduction)

	// Server-rendered pages
	RegisterPageRoutes(r, services.Loan, views, mutation...)

	// JSON API
	setupAPIV1Routes(r, cfg, services, mutation)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, mutation []gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	// Bearer auth is optional; an identity provider in front of the app may already handle it.
	if cfg.AuthJWTSecret != "" {
		v1.Use(middleware.AuthMiddleware(cfg.AuthJWTSecret))
	}

	RegisterLoanRoutes(v1, services.Loan, mutation...)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, middleware and the {"ok": false} error model

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"listings-aggregator-api/api/handlers"
	"listings-aggregator-api/api/middleware"
	"listings-aggregator-api/core/interfaces"
)

const (
	// Title is the OpenAPI title of the service
	Title = "Listings Aggregator API"

	// Version is the OpenAPI version of the service
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimiter is applied per client IP when set. The caller owns Stop.
	RateLimiter *middleware.RateLimiter

	// CORSOrigins defaults to all origins when empty
	CORSOrigins []string
}

// NewAPI creates and configures a new Huma API instance without middleware
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	handlers.InstallErrorModel()

	router := chi.NewRouter()

	// CORS runs first so preflight requests skip logging and rate limits
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimiter))
	}

	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Aggregates commodity listings from many sources under bounded concurrency and per-source timeouts, and ranks them against buyer criteria."
	// Response bodies stay plain {"ok": ...} objects without $schema links
	config.CreateHooks = nil

	api := humachi.New(router, config)

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	return api, router
}

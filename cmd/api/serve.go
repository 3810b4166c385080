// ABOUTME: serve command running the HTTP API with graceful shutdown
// ABOUTME: Mounts aggregation, signal, cache and system handlers on one router

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"listings-aggregator-api/api"
	"listings-aggregator-api/api/handlers"
	"listings-aggregator-api/api/middleware"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	logger.Info("Starting listings aggregator", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flags := newFlags()
	a, err := buildApp(ctx, cfg, logger, flags)
	if err != nil {
		return err
	}
	defer a.close()

	if cfg.Signals.Watch {
		if err := a.signals.Watch(); err != nil {
			logger.Warn("Signal file watch unavailable", map[string]interface{}{
				"path":  cfg.Signals.Path,
				"error": err.Error(),
			})
		}
	}

	apiCfg := api.APIConfig{
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		defer limiter.Stop()
		apiCfg.RateLimiter = limiter
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiCfg)
	handlers.SetErrorLogger(logger)

	handlers.NewAggregateHandler(a.search).RegisterRoutes(humaAPI)
	handlers.NewSignalHandler(a.signals).RegisterRoutes(humaAPI)
	handlers.NewCacheHandler(a.cacheForAPI(), a.cacheBackend).RegisterRoutes(humaAPI)

	system := handlers.NewSystemHandler(a.registry, flags, a.metrics.Handler())
	system.RegisterRoutes(humaAPI)
	if system.MountMetrics(router) {
		logger.Info("Metrics endpoint enabled", map[string]interface{}{"path": "/metrics"})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Server stopped", nil)
	return nil
}

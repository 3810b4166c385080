// ABOUTME: Component wiring shared by the serve and search commands
// ABOUTME: Builds stores, connectors, cache, orchestrator, enhancers and ranking from config

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"listings-aggregator-api/connectors/catalog"
	"listings-aggregator-api/connectors/partnerfeed"
	"listings-aggregator-api/connectors/softsignal"
	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/connector"
	"listings-aggregator-api/core/interfaces"
	"listings-aggregator-api/core/ranking"
	"listings-aggregator-api/core/ranking/enhancers"
	"listings-aggregator-api/core/search"
	"listings-aggregator-api/infrastructure/advisory"
	"listings-aggregator-api/infrastructure/cache/memory"
	"listings-aggregator-api/infrastructure/cache/redis"
	"listings-aggregator-api/infrastructure/cache/sqlite"
	stdhttp "listings-aggregator-api/infrastructure/http/standard"
	"listings-aggregator-api/infrastructure/listingstore"
	"listings-aggregator-api/infrastructure/metrics"
	"listings-aggregator-api/infrastructure/signalstore"
	"listings-aggregator-api/pkg/config"
	"listings-aggregator-api/pkg/featureflags"
)

// app holds every long-lived component of one process
type app struct {
	cfg     *config.Config
	logger  interfaces.Logger
	flags   featureflags.Manager
	metrics *metrics.Recorder

	cacheBackend string
	resultCache  *aggregate.ResultCache
	registry     *connector.Registry
	search       *search.SearchService
	listings     *listingstore.SQLiteStore
	signals      *signalstore.FileStore

	closers []io.Closer
}

// newCacheBackend picks the byte-level cache by type. A redis backend that
// cannot be reached falls back to memory.
func newCacheBackend(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, string, io.Closer, error) {
	switch cfg.Cache.Type {
	case "none":
		return nil, "none", nil, nil
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), "memory", nil, nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, "redis", redisCache, nil
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			return nil, "", nil, fmt.Errorf("failed to open sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache, "sqlite", sqliteCache, nil
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), "memory", nil, nil
	}
}

// buildApp wires the aggregation pipeline. The caller must call close.
func buildApp(ctx context.Context, cfg *config.Config, logger interfaces.Logger, flags featureflags.Manager) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		flags:   flags,
		metrics: metrics.NewRecorder(),
	}

	backend, backendName, backendCloser, err := newCacheBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.cacheBackend = backendName
	if backendCloser != nil {
		a.closers = append(a.closers, backendCloser)
	}

	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)
	deps := interfaces.Dependencies{
		Cache:      backend,
		HTTPClient: httpClient,
		Logger:     logger,
		Metrics:    a.metrics,
	}

	a.listings, err = listingstore.Open(cfg.Store.Path)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, a.listings)

	a.signals, err = signalstore.Open(cfg.Signals.Path, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, a.signals)

	a.registry = connector.NewRegistry(logger)
	connectors := []connector.Connector{
		catalog.New(a.listings, cfg.Store.Commodities),
		softsignal.New(a.signals),
	}
	if cfg.PartnerFeed.Name != "" {
		connectors = append(connectors, partnerfeed.New(cfg.PartnerFeed.Name, cfg.PartnerFeed.URL, httpClient))
	}
	a.registry.RegisterAll(connectors...)

	credentials, err := config.LoadCredentials(cfg.Aggregator.CredentialsFile)
	if err != nil {
		a.close()
		return nil, err
	}

	if cfg.Cache.Type != "none" {
		a.resultCache = aggregate.NewResultCache(deps, cfg.Cache.TTL)
	}
	orchestrator := aggregate.NewOrchestrator(a.registry, a.resultCache, deps, aggregate.Config{
		Concurrency: cfg.Aggregator.Concurrency,
		Timeout:     cfg.Aggregator.Timeout,
		Credentials: credentials,
	})

	sources := enhancers.Sources{
		AdvisoryTimeout: cfg.Advisory.Timeout,
		Beliefs:         a.signals,
	}
	if cfg.Advisory.URL != "" {
		sources.Advisory = advisory.NewClient(cfg.Advisory.URL, httpClient)
	}
	pipeline := enhancers.FromFlags(ctx, flags, sources, deps)

	engine := ranking.NewEngine(
		ranking.WithAdjustBudget(cfg.Ranking.AdjustBudget),
		ranking.WithAdjustConcurrency(cfg.Ranking.AdjustConcurrency),
		ranking.WithAdjuster(pipeline),
	)

	a.search = search.NewSearchService(orchestrator, engine, deps)

	logger.Info("Aggregator ready", map[string]interface{}{
		"connectors":    a.registry.Names(),
		"cache_backend": backendName,
		"concurrency":   cfg.Aggregator.Concurrency,
		"timeout_ms":    cfg.Aggregator.Timeout.Milliseconds(),
	})
	return a, nil
}

// cacheForAPI returns the result cache, or an always-miss cache when
// caching is off so the cache endpoints still answer.
func (a *app) cacheForAPI() *aggregate.ResultCache {
	if a.resultCache != nil {
		return a.resultCache
	}
	return aggregate.NewResultCache(interfaces.Dependencies{Logger: a.logger}, a.cfg.Cache.TTL)
}

// close releases stores and cache connections in reverse order
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

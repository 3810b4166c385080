// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, storage, HTTP communication, metrics and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory result cache backend on patrickmn/go-cache
// - cache/redis: RedisJSON result cache backend on go-redis and go-rejson
// - cache/sqlite: SQLite result cache backend with squirrel queries
// - listingstore: SQLite store of canonical marketplace listings
// - signalstore: JSON file store of buyer intents, reloaded via fsnotify
// - advisory: HTTP client for the interference advisory service
// - metrics: Prometheus recorder for connector and cache outcomes
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger on logrus with lumberjack rotation
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "internal:{}", entryJSON, time.Minute)
//	value, err := cache.Get(ctx, "internal:{}")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	    Prefix:  "listings:",
//	})
//
// # Stores
//
//	store, err := listingstore.Open("data/listings.db")
//	listings, err := store.Find(ctx, interfaces.ListingQuery{
//	    Commodities: []string{"maize"},
//	    Region:      "Kenya",
//	})
//
//	signals, err := signalstore.Open("data/signals.json", logger)
//	err = signals.Watch()
//
// # Logger
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Connector finished", map[string]interface{}{
//	    "connector": "internal",
//	    "count":     12,
//	})
package infrastructure

// ABOUTME: Result cache storing per-connector listings for a short TTL
// ABOUTME: Expiry is checked lazily on lookup against an injectable clock

package aggregate

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

// DefaultCacheTTL is how long a connector result stays reusable.
const DefaultCacheTTL = 60 * time.Second

// CacheEntry is the serialized form of one cached connector result.
type CacheEntry struct {
	Timestamp time.Time                  `json:"timestamp"`
	Value     []domain.NormalizedListing `json:"value"`
}

// CacheStats reports result cache activity since construction or Clear.
type CacheStats struct {
	Hits    int64         `json:"hits"`
	Misses  int64         `json:"misses"`
	Writes  int64         `json:"writes"`
	Expired int64         `json:"expired"`
	Errors  int64         `json:"errors"`
	TTL     time.Duration `json:"ttl"`
}

// ResultCache maps (connector, criteria) keys to listings. Values are
// replaced whole, so concurrent writers to one key leave the last write.
type ResultCache struct {
	backend interfaces.Cache
	ttl     time.Duration
	now     func() time.Time
	logger  interfaces.Logger
	metrics interfaces.Metrics

	hits    atomic.Int64
	misses  atomic.Int64
	writes  atomic.Int64
	expired atomic.Int64
	errors  atomic.Int64
}

// NewResultCache creates a result cache over deps.Cache. A nil backend
// yields a cache that always misses.
func NewResultCache(deps interfaces.Dependencies, ttl time.Duration) *ResultCache {
	deps = deps.WithDefaults()
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		backend: deps.Cache,
		ttl:     ttl,
		now:     time.Now,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
}

// SetClock replaces the clock used for expiry checks
func (c *ResultCache) SetClock(now func() time.Time) {
	c.now = now
}

// TTL returns the configured time-to-live
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the listings cached under key when present and not expired.
// Backend errors are treated as misses.
func (c *ResultCache) Get(ctx context.Context, key string) ([]domain.NormalizedListing, bool) {
	if c.backend == nil {
		c.recordLookup(false)
		return nil, false
	}

	data, err := c.backend.Get(ctx, key)
	if err != nil || data == nil {
		c.recordLookup(false)
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.errors.Add(1)
		c.logger.Warn("Discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = c.backend.Delete(ctx, key)
		c.recordLookup(false)
		return nil, false
	}

	if c.now().Sub(entry.Timestamp) > c.ttl {
		c.expired.Add(1)
		_ = c.backend.Delete(ctx, key)
		c.recordLookup(false)
		return nil, false
	}

	c.recordLookup(true)
	if entry.Value == nil {
		entry.Value = []domain.NormalizedListing{}
	}
	return entry.Value, true
}

// Set stores value under key, stamped with the current time.
// Backend errors are logged and otherwise ignored.
func (c *ResultCache) Set(ctx context.Context, key string, value []domain.NormalizedListing) {
	if c.backend == nil {
		return
	}

	data, err := json.Marshal(CacheEntry{Timestamp: c.now(), Value: value})
	if err != nil {
		c.errors.Add(1)
		c.logger.Warn("Failed to encode cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		c.errors.Add(1)
		c.logger.Warn("Failed to write cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	c.writes.Add(1)
}

// Clear drops every entry when the backend supports it and resets stats.
func (c *ResultCache) Clear(ctx context.Context) error {
	if c.backend == nil {
		return nil
	}
	clearer, ok := c.backend.(interfaces.Clearer)
	if !ok {
		return stderrors.New("cache backend does not support clear")
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	c.hits.Store(0)
	c.misses.Store(0)
	c.writes.Store(0)
	c.expired.Store(0)
	c.errors.Store(0)
	return nil
}

// Stats returns a snapshot of cache counters
func (c *ResultCache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Writes:  c.writes.Load(),
		Expired: c.expired.Load(),
		Errors:  c.errors.Load(),
		TTL:     c.ttl,
	}
}

// StorageStats describes the backend when it can report on itself.
// ok is false for backends without stats.
func (c *ResultCache) StorageStats(ctx context.Context) (map[string]interface{}, bool, error) {
	reporter, ok := c.backend.(interfaces.StatsReporter)
	if !ok {
		return nil, false, nil
	}
	stats, err := reporter.Stats(ctx)
	if err != nil {
		return nil, true, err
	}
	return stats, true, nil
}

func (c *ResultCache) recordLookup(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	c.metrics.ObserveCacheLookup(hit)
}

// CacheKey builds the cache key for one connector and criteria: the
// connector name followed by the canonical JSON encoding of the criteria.
// Criteria is a struct, so field order in the encoding is fixed.
func CacheKey(name string, criteria domain.Criteria) string {
	data, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Sprintf("%s:%+v", name, criteria)
	}
	return name + ":" + string(data)
}

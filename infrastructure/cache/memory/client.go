// ABOUTME: In-memory cache backend built on patrickmn/go-cache
// ABOUTME: Expired entries are dropped on lookup; no background janitor runs

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("key not found")

// MemoryCache implements the Cache interface using in-process storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		// A zero cleanup interval disables the janitor goroutine
		items: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a copy of the value stored under key
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, found := c.items.Get(key)
	if !found {
		c.items.DeleteExpired()
		return nil, ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		c.items.Delete(key)
		return nil, ErrCacheMiss
	}

	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Set stores a copy of value. A zero ttl never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Clear drops every entry
func (c *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Flush()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet dropped
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Stats returns backend statistics
func (c *MemoryCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"total_entries": c.items.ItemCount(),
	}, nil
}

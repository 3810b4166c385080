package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-aggregator-api/core/aggregate"
)

func TestCacheStats(t *testing.T) {
	cache := &mockResultCache{
		stats: aggregate.CacheStats{
			TTL:    30 * time.Second,
			Hits:   3,
			Misses: 2,
			Writes: 2,
		},
		storage: map[string]interface{}{"items": 2},
	}
	api := newTestAPI(t)
	NewCacheHandler(cache, "memory").RegisterRoutes(api)

	resp := api.Get("/cache/stats")

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{
		"ok": true,
		"backend": "memory",
		"ttlMs": 30000,
		"hits": 3,
		"misses": 2,
		"writes": 2,
		"expired": 0,
		"errors": 0,
		"storage": {"items": 2}
	}`, resp.Body.String())
}

func TestCacheStats_StorageFailure(t *testing.T) {
	cache := &mockResultCache{storage: map[string]interface{}{}, storageErr: errors.New("redis down")}
	api := newTestAPI(t)
	NewCacheHandler(cache, "redis").RegisterRoutes(api)

	resp := api.Get("/cache/stats")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), `"ok":false`)
}

func TestCacheClear(t *testing.T) {
	cache := &mockResultCache{}
	api := newTestAPI(t)
	NewCacheHandler(cache, "memory").RegisterRoutes(api)

	resp := api.Delete("/cache")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok": true}`, resp.Body.String())
	assert.Equal(t, 1, cache.cleared)
}

// ABOUTME: Result cache handlers for the Huma API
// ABOUTME: Reports cache counters and backend storage, and clears the cache on demand

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"listings-aggregator-api/api/dto/mappers"
	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/core/aggregate"
)

// ResultCache is the part of the aggregation cache the handlers use
type ResultCache interface {
	Stats() aggregate.CacheStats
	StorageStats(ctx context.Context) (map[string]interface{}, bool, error)
	Clear(ctx context.Context) error
}

// CacheHandler handles cache administration requests
type CacheHandler struct {
	cache   ResultCache
	backend string
}

// NewCacheHandler creates a new cache handler; backend names the configured store
func NewCacheHandler(cache ResultCache, backend string) *CacheHandler {
	return &CacheHandler{cache: cache, backend: backend}
}

// RegisterRoutes registers the cache routes
func (h *CacheHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cacheStats",
		Method:      http.MethodGet,
		Path:        "/cache/stats",
		Summary:     "Result cache statistics",
		Tags:        []string{"Cache"},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "clearCache",
		Method:      http.MethodDelete,
		Path:        "/cache",
		Summary:     "Clear the result cache",
		Tags:        []string{"Cache"},
	}, h.Clear)
}

// CacheStatsOutput defines the output for the Stats operation
type CacheStatsOutput struct {
	Body responses.CacheStatsResponse
}

// OKOutput is the output of operations without a payload
type OKOutput struct {
	Body responses.OKResponse
}

// Stats handles GET /cache/stats
func (h *CacheHandler) Stats(ctx context.Context, _ *struct{}) (*CacheStatsOutput, error) {
	storage, _, err := h.cache.StorageStats(ctx)
	if err != nil {
		return nil, toHumaError(ctx, err)
	}
	return &CacheStatsOutput{Body: mappers.ToCacheStatsResponse(h.backend, h.cache.Stats(), storage)}, nil
}

// Clear handles DELETE /cache
func (h *CacheHandler) Clear(ctx context.Context, _ *struct{}) (*OKOutput, error) {
	if err := h.cache.Clear(ctx); err != nil {
		return nil, toHumaError(ctx, err)
	}
	return &OKOutput{Body: responses.OKResponse{OK: true}}, nil
}

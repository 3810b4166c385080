// ABOUTME: Mappers from core search results to API response DTOs
// ABOUTME: Guarantees non-nil slices so JSON bodies never carry null arrays

package mappers

import (
	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/search"
)

// ToAggregateResponse converts a search result without ranking
func ToAggregateResponse(r *search.SearchResponse) responses.AggregateResponse {
	return responses.AggregateResponse{
		OK:      true,
		Meta:    meta(r.Meta),
		Results: nonNilListings(r.Results),
	}
}

// ToSearchResponse converts a ranked search result
func ToSearchResponse(r *search.SearchResponse) responses.SearchResponse {
	ranked := r.Ranked
	if ranked == nil {
		ranked = []domain.RankedResult{}
	}
	return responses.SearchResponse{
		OK:      true,
		Meta:    meta(r.Meta),
		Results: nonNilListings(r.Results),
		Ranked:  ranked,
	}
}

// ToCacheStatsResponse merges result cache counters with backend storage stats
func ToCacheStatsResponse(backend string, stats aggregate.CacheStats, storage map[string]interface{}) responses.CacheStatsResponse {
	return responses.CacheStatsResponse{
		OK:      true,
		Backend: backend,
		TTLMs:   stats.TTL.Milliseconds(),
		Hits:    stats.Hits,
		Misses:  stats.Misses,
		Writes:  stats.Writes,
		Expired: stats.Expired,
		Errors:  stats.Errors,
		Storage: storage,
	}
}

func meta(m domain.AggregationMeta) domain.AggregationMeta {
	if m.Successes == nil {
		m.Successes = []domain.SourceSuccess{}
	}
	if m.Failures == nil {
		m.Failures = []domain.SourceFailure{}
	}
	return m
}

func nonNilListings(l []domain.NormalizedListing) []domain.NormalizedListing {
	if l == nil {
		return []domain.NormalizedListing{}
	}
	return l
}

package mappers

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/search"
)

func TestToAggregateResponse_NoNullArrays(t *testing.T) {
	resp := ToAggregateResponse(&search.SearchResponse{OK: true})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"meta":{"successes":[],"failures":[]},"results":[]}`, string(data))
}

func TestToSearchResponse(t *testing.T) {
	in := &search.SearchResponse{
		OK: true,
		Meta: domain.AggregationMeta{
			Successes: []domain.SourceSuccess{{Name: "A", Count: 1}},
			Failures:  []domain.SourceFailure{{Name: "B", Error: "boom"}},
		},
		Results: []domain.NormalizedListing{{ID: "x", Source: "A"}},
	}

	resp := ToSearchResponse(in)
	assert.True(t, resp.OK)
	assert.NotNil(t, resp.Ranked)
	assert.Empty(t, resp.Ranked)
	assert.Equal(t, "boom", resp.Meta.Failures[0].Error)
	assert.Len(t, resp.Results, 1)
}

func TestToCacheStatsResponse(t *testing.T) {
	stats := aggregate.CacheStats{Hits: 3, Misses: 2, Writes: 2, TTL: time.Minute}

	resp := ToCacheStatsResponse("memory", stats, map[string]interface{}{"entries": 2})
	assert.Equal(t, int64(60000), resp.TTLMs)
	assert.Equal(t, int64(3), resp.Hits)
	assert.Equal(t, "memory", resp.Backend)
	assert.Equal(t, 2, resp.Storage["entries"])
}

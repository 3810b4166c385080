// ABOUTME: Response DTOs for the aggregation, search and cache endpoints
// ABOUTME: Every body carries ok so clients can branch without reading the status code

package responses

import "listings-aggregator-api/core/domain"

// AggregateResponse is the body of a successful POST /aggregate
type AggregateResponse struct {
	OK      bool                       `json:"ok"`
	Meta    domain.AggregationMeta     `json:"meta"`
	Results []domain.NormalizedListing `json:"results"`
}

// SearchResponse is the body of a successful POST /search
type SearchResponse struct {
	OK      bool                       `json:"ok"`
	Meta    domain.AggregationMeta     `json:"meta"`
	Results []domain.NormalizedListing `json:"results"`
	Ranked  []domain.RankedResult      `json:"ranked"`
}

// ConnectorsResponse lists the registered connectors
type ConnectorsResponse struct {
	OK         bool     `json:"ok"`
	Connectors []string `json:"connectors"`
}

// CacheStatsResponse reports result cache counters and backend details
type CacheStatsResponse struct {
	OK      bool                   `json:"ok"`
	Backend string                 `json:"backend"`
	TTLMs   int64                  `json:"ttlMs"`
	Hits    int64                  `json:"hits"`
	Misses  int64                  `json:"misses"`
	Writes  int64                  `json:"writes"`
	Expired int64                  `json:"expired"`
	Errors  int64                  `json:"errors"`
	Storage map[string]interface{} `json:"storage,omitempty"`
}

// SignalResponse echoes the stored intent
type SignalResponse struct {
	OK     bool               `json:"ok"`
	Intent domain.BuyerIntent `json:"intent"`
}

// OKResponse is returned by operations without a payload
type OKResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	OK         bool            `json:"ok"`
	Status     string          `json:"status"`
	Connectors int             `json:"connectors"`
	Features   map[string]bool `json:"features,omitempty"`
}

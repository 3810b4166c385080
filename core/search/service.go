// ABOUTME: Search service combining aggregation and ranking behind one call
// ABOUTME: Provides the request boundary used by the HTTP layer and the CLI

package search

import (
	"context"
	"fmt"

	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
)

// MaxLimit caps the number of ranked results a caller may request.
const MaxLimit = 500

const maxQueryLength = 200

// Aggregator fans criteria out to connectors
type Aggregator interface {
	Aggregate(ctx context.Context, requested map[string]string, criteria domain.Criteria, opts aggregate.Options) (*domain.AggregationResult, error)
}

// Ranker orders listings against criteria
type Ranker interface {
	Rank(ctx context.Context, criteria domain.Criteria, listings []domain.NormalizedListing) []domain.RankedResult
}

// SearchRequest is one aggregation request.
type SearchRequest struct {
	Criteria   domain.Criteria
	Connectors map[string]string
	Options    aggregate.Options

	// Limit truncates the ranked list; 0 means no limit
	Limit int
}

// SearchResponse carries merged results with per-source accounting and,
// for ranked searches, the ranked list.
type SearchResponse struct {
	OK      bool                       `json:"ok"`
	Meta    domain.AggregationMeta     `json:"meta"`
	Results []domain.NormalizedListing `json:"results"`
	Ranked  []domain.RankedResult      `json:"ranked,omitempty"`
}

// SearchService handles aggregation and ranking requests
type SearchService struct {
	aggregator Aggregator
	ranker     Ranker
	logger     interfaces.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(aggregator Aggregator, ranker Ranker, deps interfaces.Dependencies) *SearchService {
	deps = deps.WithDefaults()
	return &SearchService{
		aggregator: aggregator,
		ranker:     ranker,
		logger:     deps.Logger,
	}
}

// validateRequest validates request parameters
func (s *SearchService) validateRequest(req SearchRequest) error {
	if req.Limit < 0 || req.Limit > MaxLimit {
		return &errors.ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxLimit)}
	}

	if len(req.Criteria.Query) > maxQueryLength {
		return &errors.ValidationError{Field: "criteria.query", Message: fmt.Sprintf("cannot exceed %d characters", maxQueryLength)}
	}

	c := req.Criteria
	if c.PriceMin != nil && c.PriceMax != nil && *c.PriceMin > *c.PriceMax {
		return &errors.ValidationError{Field: "criteria.priceMin", Message: "cannot exceed priceMax"}
	}

	if req.Options.Concurrency < 0 {
		return &errors.ValidationError{Field: "options.concurrency", Message: "cannot be negative"}
	}

	return nil
}

// Aggregate runs the fan-out without ranking.
func (s *SearchService) Aggregate(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.aggregator.Aggregate(ctx, req.Connectors, req.Criteria, req.Options)
	if err != nil {
		return nil, err
	}

	return &SearchResponse{
		OK:      true,
		Meta:    result.Meta,
		Results: result.Results,
	}, nil
}

// Search aggregates then ranks the merged listings.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	resp, err := s.Aggregate(ctx, req)
	if err != nil {
		return nil, err
	}

	ranked := s.ranker.Rank(ctx, req.Criteria, resp.Results)
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	resp.Ranked = ranked

	s.logger.Info("Search completed", map[string]interface{}{
		"sources_ok":     len(resp.Meta.Successes),
		"sources_failed": len(resp.Meta.Failures),
		"results":        len(resp.Results),
		"ranked":         len(ranked),
	})
	return resp, nil
}

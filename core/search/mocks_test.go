package search

import (
	"context"

	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/domain"
)

// mockAggregator is a mock implementation of the Aggregator interface
type mockAggregator struct {
	aggregateFunc func(ctx context.Context, requested map[string]string, criteria domain.Criteria, opts aggregate.Options) (*domain.AggregationResult, error)
	calls         int
}

func (m *mockAggregator) Aggregate(ctx context.Context, requested map[string]string, criteria domain.Criteria, opts aggregate.Options) (*domain.AggregationResult, error) {
	m.calls++
	if m.aggregateFunc != nil {
		return m.aggregateFunc(ctx, requested, criteria, opts)
	}
	return &domain.AggregationResult{}, nil
}

// mockRanker is a mock implementation of the Ranker interface
type mockRanker struct {
	rankFunc func(ctx context.Context, criteria domain.Criteria, listings []domain.NormalizedListing) []domain.RankedResult
}

func (m *mockRanker) Rank(ctx context.Context, criteria domain.Criteria, listings []domain.NormalizedListing) []domain.RankedResult {
	if m.rankFunc != nil {
		return m.rankFunc(ctx, criteria, listings)
	}
	return nil
}

package enhancers

import (
	"context"
	"sync"
	"time"

	"listings-aggregator-api/core/domain"
)

type mockAdvisory struct {
	adjustmentFunc func(ctx context.Context, listingID string) (float64, bool, error)
}

func (m *mockAdvisory) Adjustment(ctx context.Context, listingID string) (float64, bool, error) {
	return m.adjustmentFunc(ctx, listingID)
}

type mockBeliefs struct {
	beliefFunc func(ctx context.Context, listing domain.NormalizedListing) (float64, bool)
}

func (m *mockBeliefs) Belief(ctx context.Context, listing domain.NormalizedListing) (float64, bool) {
	return m.beliefFunc(ctx, listing)
}

type funcEnhancer struct {
	name  string
	delta func() (float64, error)
}

func (f funcEnhancer) Name() string { return f.name }
func (f funcEnhancer) Delta(context.Context, domain.NormalizedListing, domain.Criteria) (float64, error) {
	return f.delta()
}

type recordingMetrics struct {
	mu     sync.Mutex
	errors []string
}

func (m *recordingMetrics) ObserveConnector(string, string, time.Duration) {}
func (m *recordingMetrics) ObserveCacheLookup(bool)                        {}
func (m *recordingMetrics) ObserveEnhancerError(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, name)
}

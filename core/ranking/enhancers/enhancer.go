// ABOUTME: Score enhancers applied after the base ranking score
// ABOUTME: Each enhancer returns a small signed delta and fails open to zero

package enhancers

import (
	"context"
	"fmt"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

// Enhancer contributes one additive score adjustment.
type Enhancer interface {
	Name() string
	Delta(ctx context.Context, listing domain.NormalizedListing, criteria domain.Criteria) (float64, error)
}

// Pipeline is an ordered set of enhancers fixed at construction.
// It satisfies ranking.Adjuster.
type Pipeline struct {
	enhancers []Enhancer
	logger    interfaces.Logger
	metrics   interfaces.Metrics
}

// NewPipeline creates a pipeline running enhancers in the given order.
func NewPipeline(deps interfaces.Dependencies, enhancers ...Enhancer) *Pipeline {
	deps = deps.WithDefaults()
	return &Pipeline{
		enhancers: enhancers,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}
}

// Names returns the active enhancer names in order
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.enhancers))
	for i, e := range p.enhancers {
		names[i] = e.Name()
	}
	return names
}

// Len returns the number of active enhancers
func (p *Pipeline) Len() int {
	return len(p.enhancers)
}

// Adjust runs every enhancer against listing and returns the delta each
// contributed. A failing enhancer contributes 0. Returns nil when the
// pipeline is empty.
func (p *Pipeline) Adjust(ctx context.Context, listing domain.NormalizedListing, criteria domain.Criteria) map[string]float64 {
	if len(p.enhancers) == 0 {
		return nil
	}

	deltas := make(map[string]float64, len(p.enhancers))
	for _, e := range p.enhancers {
		delta, err := safeDelta(ctx, e, listing, criteria)
		if err != nil {
			p.metrics.ObserveEnhancerError(e.Name())
			p.logger.Debug("Enhancer failed, contributing zero", map[string]interface{}{
				"enhancer":   e.Name(),
				"listing_id": listing.ID,
				"error":      err.Error(),
			})
			delta = 0
		}
		deltas[e.Name()] = delta
	}
	return deltas
}

func safeDelta(ctx context.Context, e Enhancer, listing domain.NormalizedListing, criteria domain.Criteria) (delta float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			delta, err = 0, fmt.Errorf("panic: %v", r)
		}
	}()
	return e.Delta(ctx, listing, criteria)
}

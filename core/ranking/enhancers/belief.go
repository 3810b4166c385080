package enhancers

import (
	"context"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

const (
	beliefScale    = 0.03
	BeliefBoostKey = "belief_boost"
)

// Belief boosts listings backed by buyer-intent soft signals.
type Belief struct {
	source interfaces.BeliefSource
}

// NewBelief creates the enhancer over source
func NewBelief(source interfaces.BeliefSource) *Belief {
	return &Belief{source: source}
}

func (b *Belief) Name() string { return BeliefBoostKey }

func (b *Belief) Delta(ctx context.Context, listing domain.NormalizedListing, _ domain.Criteria) (float64, error) {
	if b.source == nil {
		return 0, nil
	}
	belief, ok := b.source.Belief(ctx, listing)
	if !ok {
		return 0, nil
	}
	return beliefScale * min(1, max(0, belief)), nil
}

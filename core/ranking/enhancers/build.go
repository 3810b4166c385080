package enhancers

import (
	"context"
	"time"

	"listings-aggregator-api/core/interfaces"
	"listings-aggregator-api/pkg/featureflags"
)

// Sources are the collaborators enhancers may draw on. Any may be nil.
type Sources struct {
	Advisory        interfaces.AdvisoryClient
	AdvisoryTimeout time.Duration
	Beliefs         interfaces.BeliefSource
	Now             func() time.Time
}

// FromFlags builds the pipeline once from feature flags. An enabled
// enhancer whose collaborator is missing is left out with a warning.
func FromFlags(ctx context.Context, flags featureflags.Manager, src Sources, deps interfaces.Dependencies) *Pipeline {
	deps = deps.WithDefaults()
	var active []Enhancer

	if flags.IsEnabled(ctx, featureflags.UncertaintyPenalty) {
		active = append(active, NewUncertainty(src.Now))
	}

	if flags.IsEnabled(ctx, featureflags.InterferenceAdjustment) {
		if src.Advisory != nil {
			active = append(active, NewInterference(src.Advisory, src.AdvisoryTimeout))
		} else {
			deps.Logger.Warn("Interference adjustment enabled without an advisory client", nil)
		}
	}

	if flags.IsEnabled(ctx, featureflags.BeliefBoost) {
		if src.Beliefs != nil {
			active = append(active, NewBelief(src.Beliefs))
		} else {
			deps.Logger.Warn("Belief boost enabled without a signal source", nil)
		}
	}

	pipeline := NewPipeline(deps, active...)
	deps.Logger.Info("Ranking enhancers configured", map[string]interface{}{
		"enhancers": pipeline.Names(),
	})
	return pipeline
}

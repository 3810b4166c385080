package enhancers

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
	"listings-aggregator-api/core/ranking"
	"listings-aggregator-api/pkg/featureflags"
)

var fixedNow = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func completeListing() domain.NormalizedListing {
	listed := fixedNow
	return domain.NormalizedListing{
		ID:                "l-1",
		Counterparty:      "Coop",
		PricePerUnit:      domain.Float(10),
		Quantity:          domain.Float(5),
		Region:            "Kisumu",
		QualitySpecs:      "grade A",
		SocialImpactScore: domain.Float(70),
		ListedAt:          &listed,
	}
}

func TestUncertainty_CompleteFreshListing(t *testing.T) {
	delta, err := NewUncertainty(func() time.Time { return fixedNow }).Delta(context.Background(), completeListing(), domain.Criteria{})

	require.NoError(t, err)
	assert.Equal(t, 0.0, delta)
}

func TestUncertainty_MissingFieldsAndAge(t *testing.T) {
	u := NewUncertainty(func() time.Time { return fixedNow })

	listed := fixedNow.Add(-5 * 24 * time.Hour)
	listing := domain.NormalizedListing{ID: "sparse", ListedAt: &listed}
	assert.Equal(t, 6, MissingFields(listing))

	delta, err := u.Delta(context.Background(), listing, domain.Criteria{})
	require.NoError(t, err)
	// 0.5*6 + 5*0.1 = 3.5
	assert.InDelta(t, -0.35, delta, 1e-9)
}

func TestUncertainty_AgeCapped(t *testing.T) {
	u := NewUncertainty(func() time.Time { return fixedNow })
	listing := completeListing()
	old := fixedNow.Add(-400 * 24 * time.Hour)
	listing.ListedAt = &old

	delta, _ := u.Delta(context.Background(), listing, domain.Criteria{})
	assert.InDelta(t, -0.2, delta, 1e-9)

	future := fixedNow.Add(48 * time.Hour)
	listing.ListedAt = &future
	delta, _ = u.Delta(context.Background(), listing, domain.Criteria{})
	assert.Equal(t, 0.0, delta)
}

func TestInterference_ClampsAdvisoryValue(t *testing.T) {
	advisory := &mockAdvisory{adjustmentFunc: func(ctx context.Context, listingID string) (float64, bool, error) {
		return 0.7, true, nil
	}}

	delta, err := NewInterference(advisory, 0).Delta(context.Background(), completeListing(), domain.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 0.1, delta)

	advisory.adjustmentFunc = func(ctx context.Context, listingID string) (float64, bool, error) {
		return -0.04, true, nil
	}
	delta, err = NewInterference(advisory, 0).Delta(context.Background(), completeListing(), domain.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, -0.04, delta)
}

func TestInterference_NoDataIsZero(t *testing.T) {
	advisory := &mockAdvisory{adjustmentFunc: func(ctx context.Context, listingID string) (float64, bool, error) {
		return 0.09, false, nil
	}}

	delta, err := NewInterference(advisory, 0).Delta(context.Background(), completeListing(), domain.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, delta)
}

func TestInterference_SlowAdvisoryTimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	advisory := &mockAdvisory{adjustmentFunc: func(ctx context.Context, listingID string) (float64, bool, error) {
		<-release
		return 0.1, true, nil
	}}

	start := time.Now()
	delta, err := NewInterference(advisory, 20*time.Millisecond).Delta(context.Background(), completeListing(), domain.Criteria{})

	assert.Error(t, err)
	assert.Equal(t, 0.0, delta)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestInterference_UnresponsiveAdvisoryDoesNotStallRanking(t *testing.T) {
	advisory := &mockAdvisory{adjustmentFunc: func(ctx context.Context, _ string) (float64, bool, error) {
		<-ctx.Done()
		return 0, false, ctx.Err()
	}}
	pipeline := NewPipeline(interfaces.Dependencies{}, NewInterference(advisory, 0))
	engine := ranking.NewEngine(ranking.WithAdjuster(pipeline))

	listings := make([]domain.NormalizedListing, 40)
	for i := range listings {
		listings[i] = completeListing()
		listings[i].ID = fmt.Sprintf("l-%d", i)
	}

	start := time.Now()
	ranked := engine.Rank(context.Background(), domain.Criteria{}, listings)
	elapsed := time.Since(start)

	require.Len(t, ranked, 40)
	assert.Less(t, elapsed, 2*ranking.DefaultAdjustBudget)
	for _, r := range ranked {
		assert.Equal(t, 0.0, r.Adjustments[InterferenceKey])
	}
}

func TestBelief_ScalesAndClamps(t *testing.T) {
	beliefs := &mockBeliefs{beliefFunc: func(ctx context.Context, listing domain.NormalizedListing) (float64, bool) {
		return 0.5, true
	}}
	delta, err := NewBelief(beliefs).Delta(context.Background(), completeListing(), domain.Criteria{})
	require.NoError(t, err)
	assert.InDelta(t, 0.015, delta, 1e-9)

	beliefs.beliefFunc = func(ctx context.Context, listing domain.NormalizedListing) (float64, bool) {
		return 4, true
	}
	delta, _ = NewBelief(beliefs).Delta(context.Background(), completeListing(), domain.Criteria{})
	assert.InDelta(t, 0.03, delta, 1e-9)

	beliefs.beliefFunc = func(ctx context.Context, listing domain.NormalizedListing) (float64, bool) {
		return 0.9, false
	}
	delta, _ = NewBelief(beliefs).Delta(context.Background(), completeListing(), domain.Criteria{})
	assert.Equal(t, 0.0, delta)
}

func TestPipeline_FailsOpen(t *testing.T) {
	metrics := &recordingMetrics{}
	p := NewPipeline(interfaces.Dependencies{Metrics: metrics},
		funcEnhancer{name: "erroring", delta: func() (float64, error) { return 0.5, stderrors.New("down") }},
		funcEnhancer{name: "panicking", delta: func() (float64, error) { panic("bad data") }},
		funcEnhancer{name: "working", delta: func() (float64, error) { return 0.02, nil }},
	)

	deltas := p.Adjust(context.Background(), completeListing(), domain.Criteria{})

	assert.Equal(t, map[string]float64{"erroring": 0, "panicking": 0, "working": 0.02}, deltas)
	assert.Equal(t, []string{"erroring", "panicking"}, metrics.errors)
}

func TestPipeline_EmptyReturnsNil(t *testing.T) {
	assert.Nil(t, NewPipeline(interfaces.Dependencies{}).Adjust(context.Background(), completeListing(), domain.Criteria{}))
}

func TestFromFlags(t *testing.T) {
	advisory := &mockAdvisory{adjustmentFunc: func(ctx context.Context, listingID string) (float64, bool, error) {
		return 0, false, nil
	}}

	none := FromFlags(context.Background(), featureflags.NewStaticManager(nil), Sources{Advisory: advisory}, interfaces.Dependencies{})
	assert.Equal(t, 0, none.Len())

	all := FromFlags(context.Background(), featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.UncertaintyPenalty:     true,
		featureflags.InterferenceAdjustment: true,
		featureflags.BeliefBoost:            true,
	}), Sources{Advisory: advisory}, interfaces.Dependencies{})

	// Belief boost has no source and is left out
	assert.Equal(t, []string{UncertaintyPenaltyKey, InterferenceKey}, all.Names())
}

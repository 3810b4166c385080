// ABOUTME: Ranking engine ordering merged listings by weighted match score
// ABOUTME: Applies optional score adjustments after the base score and sorts stably

package ranking

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"listings-aggregator-api/core/domain"
)

const (
	// DefaultAdjustBudget bounds the time all adjustments of one Rank call may take.
	DefaultAdjustBudget = 500 * time.Millisecond

	// DefaultAdjustConcurrency caps how many listings are adjusted at once.
	DefaultAdjustConcurrency = 32
)

// Adjuster contributes named score deltas for one listing. Implementations
// must not fail and must return promptly once ctx is done; a contributor
// that cannot answer reports nothing. Adjust is called concurrently.
type Adjuster interface {
	Adjust(ctx context.Context, listing domain.NormalizedListing, criteria domain.Criteria) map[string]float64
}

// Engine ranks listings against criteria.
type Engine struct {
	weights     Weights
	adjuster    Adjuster
	budget      time.Duration
	concurrency int
}

// Option configures an Engine
type Option func(*Engine)

// WithAdjuster sets the post-score adjuster
func WithAdjuster(a Adjuster) Option {
	return func(e *Engine) {
		e.adjuster = a
	}
}

// WithAdjustBudget sets the deadline shared by every adjustment in one
// Rank call. Zero or less removes the shared deadline.
func WithAdjustBudget(d time.Duration) Option {
	return func(e *Engine) {
		e.budget = d
	}
}

// WithAdjustConcurrency caps concurrent adjustments. Values below 1 are ignored.
func WithAdjustConcurrency(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.concurrency = n
		}
	}
}

// NewEngine creates a ranking engine with DefaultWeights and no adjuster.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:     DefaultWeights,
		budget:      DefaultAdjustBudget,
		concurrency: DefaultAdjustConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank scores every listing and returns them best first. Listings with
// equal scores keep their input order. The input slice is not modified.
//
// Adjustments for different listings run concurrently and share one
// deadline per call.
func (e *Engine) Rank(ctx context.Context, criteria domain.Criteria, listings []domain.NormalizedListing) []domain.RankedResult {
	ranked := make([]domain.RankedResult, len(listings))

	if e.adjuster == nil || len(listings) < 2 {
		for i, listing := range listings {
			ranked[i] = e.Score(ctx, criteria, listing)
		}
	} else {
		adjustCtx := ctx
		if e.budget > 0 {
			var cancel context.CancelFunc
			adjustCtx, cancel = context.WithTimeout(ctx, e.budget)
			defer cancel()
		}

		var g errgroup.Group
		g.SetLimit(e.concurrency)
		for i, listing := range listings {
			g.Go(func() error {
				ranked[i] = e.Score(adjustCtx, criteria, listing)
				return nil
			})
		}
		_ = g.Wait()
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	return ranked
}

// Score ranks a single listing.
func (e *Engine) Score(ctx context.Context, criteria domain.Criteria, listing domain.NormalizedListing) domain.RankedResult {
	factors := ScoreFactors(criteria, listing)
	base := e.weights.Score(factors)

	score := base
	var adjustments map[string]float64
	if e.adjuster != nil {
		adjustments = e.adjuster.Adjust(ctx, listing, criteria)
		score += sumDeltas(adjustments)
	}
	score = clamp(score)

	return domain.RankedResult{
		Listing:         listing,
		MatchScore:      score,
		MatchQuality:    Quality(score),
		MatchingFactors: factors,
		BaseScore:       base,
		Adjustments:     adjustments,
	}
}

// sumDeltas adds deltas in name order so float rounding is reproducible.
func sumDeltas(deltas map[string]float64) float64 {
	names := make([]string, 0, len(deltas))
	for name := range deltas {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0.0
	for _, name := range names {
		total += deltas[name]
	}
	return total
}

package enhancers

import (
	"context"
	"fmt"
	"time"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

const (
	// DefaultAdvisoryTimeout bounds each advisory lookup.
	DefaultAdvisoryTimeout = 150 * time.Millisecond

	maxInterference = 0.1
	InterferenceKey = "interference_adjustment"
)

type advisoryResult struct {
	value float64
	ok    bool
	err   error
}

// Interference applies the advisory service's adjustment for a listing,
// bounded to a small range. Lookups never outlast the timeout.
type Interference struct {
	client  interfaces.AdvisoryClient
	timeout time.Duration
}

// NewInterference creates the enhancer. timeout <= 0 uses DefaultAdvisoryTimeout.
func NewInterference(client interfaces.AdvisoryClient, timeout time.Duration) *Interference {
	if timeout <= 0 {
		timeout = DefaultAdvisoryTimeout
	}
	return &Interference{client: client, timeout: timeout}
}

func (i *Interference) Name() string { return InterferenceKey }

func (i *Interference) Delta(ctx context.Context, listing domain.NormalizedListing, _ domain.Criteria) (float64, error) {
	if i.client == nil || listing.ID == "" {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	done := make(chan advisoryResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- advisoryResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		value, ok, err := i.client.Adjustment(ctx, listing.ID)
		done <- advisoryResult{value: value, ok: ok, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return 0, res.err
		}
		if !res.ok {
			return 0, nil
		}
		return min(maxInterference, max(-maxInterference, res.value)), nil
	case <-ctx.Done():
		return 0, fmt.Errorf("advisory lookup for %s: %w", listing.ID, ctx.Err())
	}
}

// ABOUTME: Service interfaces for advisory collaborators of the ranking core
// ABOUTME: Defines contracts for optional signals consumed by score enhancers

package interfaces

import (
	"context"

	"listings-aggregator-api/core/domain"
)

// AdvisoryClient queries the optional interference/conflict advisory service.
// ok is false when the service has no data for the listing.
type AdvisoryClient interface {
	Adjustment(ctx context.Context, listingID string) (value float64, ok bool, err error)
}

// BeliefSource scores how strongly soft signals support a listing.
// ok is false when no signal applies.
type BeliefSource interface {
	Belief(ctx context.Context, listing domain.NormalizedListing) (value float64, ok bool)
}

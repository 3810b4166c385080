// ABOUTME: Storage interfaces for the external collaborators wrapped by connectors
// ABOUTME: Listing store and soft-signal store contracts

package interfaces

import (
	"context"

	"listings-aggregator-api/core/domain"
)

// ListingQuery narrows a listing store lookup. Empty fields do not filter.
type ListingQuery struct {
	Commodities          []string
	Region               string
	PriceMin             *float64
	PriceMax             *float64
	MinQuantity          *float64
	MinSocialImpactScore *float64
	Limit                uint64
}

// ListingStore supplies canonical marketplace records.
type ListingStore interface {
	// Find returns listings matching the query, already normalized
	Find(ctx context.Context, q ListingQuery) ([]domain.NormalizedListing, error)

	// Upsert inserts or replaces listings by ID
	Upsert(ctx context.Context, listings []domain.NormalizedListing) error
}

// SignalStore supplies buyer intent records. Writes are append-only.
type SignalStore interface {
	// List returns a snapshot of all intents
	List(ctx context.Context) ([]domain.BuyerIntent, error)

	// Append adds an intent and persists it atomically
	Append(ctx context.Context, intent domain.BuyerIntent) error
}

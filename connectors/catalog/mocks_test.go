package catalog

import (
	"context"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

type mockStore struct {
	FindFunc   func(ctx context.Context, q interfaces.ListingQuery) ([]domain.NormalizedListing, error)
	UpsertFunc func(ctx context.Context, listings []domain.NormalizedListing) error

	queries []interfaces.ListingQuery
}

func (m *mockStore) Find(ctx context.Context, q interfaces.ListingQuery) ([]domain.NormalizedListing, error) {
	m.queries = append(m.queries, q)
	if m.FindFunc != nil {
		return m.FindFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) Upsert(ctx context.Context, listings []domain.NormalizedListing) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, listings)
	}
	return nil
}

// ABOUTME: Connector over the marketplace listing store
// ABOUTME: Applies the commodity allow-list before any criteria filter reaches the store

package catalog

import (
	"context"
	"sort"
	"strings"

	"listings-aggregator-api/core/connector"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

// Name is the registry name of the listing store connector
const Name = "internal"

// Connector reads canonical listings from a ListingStore
type Connector struct {
	store   interfaces.ListingStore
	allowed []string
	limit   uint64
}

var _ connector.Connector = (*Connector)(nil)

// New creates the connector. An empty allow-list admits every commodity.
func New(store interfaces.ListingStore, allowed []string) *Connector {
	seen := make(map[string]bool, len(allowed))
	normalized := make([]string, 0, len(allowed))
	for _, c := range allowed {
		c = normalizeCommodity(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		normalized = append(normalized, c)
	}
	sort.Strings(normalized)

	return &Connector{store: store, allowed: normalized}
}

// WithLimit caps the number of rows fetched per call
func (c *Connector) WithLimit(limit uint64) *Connector {
	c.limit = limit
	return c
}

func (c *Connector) Name() string {
	return Name
}

// AllowedCommodities returns the normalized allow-list
func (c *Connector) AllowedCommodities() []string {
	out := make([]string, len(c.allowed))
	copy(out, c.allowed)
	return out
}

// FetchAndNormalize queries the store. The credential is unused since the
// store is local to the service.
func (c *Connector) FetchAndNormalize(ctx context.Context, _ string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
	commodities, ok := c.commodityFilter(criteria.Commodity)
	if !ok {
		return []domain.NormalizedListing{}, nil
	}

	listings, err := c.store.Find(ctx, interfaces.ListingQuery{
		Commodities:          commodities,
		Region:               criteria.Region,
		PriceMin:             criteria.PriceMin,
		PriceMax:             criteria.PriceMax,
		MinQuantity:          criteria.MinQuantity,
		MinSocialImpactScore: criteria.MinSocialImpactScore,
		Limit:                c.limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.NormalizedListing, 0, len(listings))
	for _, l := range listings {
		if !c.isAllowed(l.Commodity) || !matchesQuery(l, criteria.Query) {
			continue
		}
		l.Source = Name
		out = append(out, l)
	}
	return out, nil
}

// commodityFilter intersects the requested commodity with the allow-list.
// ok is false when the request asks for a commodity outside the list.
func (c *Connector) commodityFilter(requested string) ([]string, bool) {
	requested = normalizeCommodity(requested)
	if requested == "" {
		return c.AllowedCommodities(), true
	}
	if !c.isAllowed(requested) {
		return nil, false
	}
	return []string{requested}, true
}

func (c *Connector) isAllowed(commodity string) bool {
	if len(c.allowed) == 0 {
		return true
	}
	commodity = normalizeCommodity(commodity)
	i := sort.SearchStrings(c.allowed, commodity)
	return i < len(c.allowed) && c.allowed[i] == commodity
}

func matchesQuery(l domain.NormalizedListing, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{l.Commodity, l.Counterparty, l.QualitySpecs, l.Region} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func normalizeCommodity(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// ABOUTME: Connector exposing buyer intents from the soft-signal store as listings
// ABOUTME: Intents become demand-side listings whose relevance is the intent confidence

package softsignal

import (
	"context"
	"strings"

	"listings-aggregator-api/core/connector"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

// Name is the registry name of the soft-signal connector
const Name = "soft_signals"

// KindBuyerIntent marks listings that came from an intent in Metadata["kind"]
const KindBuyerIntent = "buyer_intent"

// Connector reads buyer intents from a SignalStore
type Connector struct {
	store interfaces.SignalStore
}

var _ connector.Connector = (*Connector)(nil)

// New creates the connector
func New(store interfaces.SignalStore) *Connector {
	return &Connector{store: store}
}

func (c *Connector) Name() string {
	return Name
}

// FetchAndNormalize lists intents matching the criteria commodity and region.
// An intent whose MaxPrice is below criteria.PriceMin is skipped since the
// buyer would not pay the floor price.
func (c *Connector) FetchAndNormalize(ctx context.Context, _ string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
	intents, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	commodity := strings.ToLower(strings.TrimSpace(criteria.Commodity))
	region := strings.ToLower(strings.TrimSpace(criteria.Region))

	out := make([]domain.NormalizedListing, 0, len(intents))
	for _, intent := range intents {
		if commodity != "" && strings.ToLower(strings.TrimSpace(intent.Commodity)) != commodity {
			continue
		}
		if region != "" && intent.Region != "" && !strings.Contains(strings.ToLower(intent.Region), region) {
			continue
		}
		if criteria.PriceMin != nil && intent.MaxPrice != nil && *intent.MaxPrice < *criteria.PriceMin {
			continue
		}
		out = append(out, ToListing(intent))
	}
	return out, nil
}

// ToListing maps an intent onto the normalized listing shape
func ToListing(intent domain.BuyerIntent) domain.NormalizedListing {
	confidence := intent.Confidence
	listing := domain.NormalizedListing{
		ID:             "intent:" + intent.ID,
		Source:         Name,
		Counterparty:   intent.Buyer,
		Commodity:      intent.Commodity,
		Quantity:       intent.Quantity,
		Unit:           intent.Unit,
		PricePerUnit:   intent.MaxPrice,
		Currency:       intent.Currency,
		Region:         intent.Region,
		QualitySpecs:   intent.Notes,
		RelevanceScore: &confidence,
		Metadata: map[string]interface{}{
			"kind":       KindBuyerIntent,
			"intentId":   intent.ID,
			"confidence": intent.Confidence,
		},
	}
	if !intent.CreatedAt.IsZero() {
		created := intent.CreatedAt
		listing.ListedAt = &created
	}
	return listing
}

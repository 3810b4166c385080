package signalstore

import (
	"context"
	"strings"

	"listings-aggregator-api/core/domain"
)

// Belief returns the mean confidence of the intents that ask for the
// listing's commodity. When both the intent and the listing name a region,
// the listing region must contain the intent region.
func (s *FileStore) Belief(ctx context.Context, listing domain.NormalizedListing) (float64, bool) {
	commodity := strings.ToLower(strings.TrimSpace(listing.Commodity))
	if commodity == "" {
		return 0, false
	}
	region := strings.ToLower(listing.Region)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum float64
	var n int
	for _, intent := range s.intents {
		if strings.ToLower(strings.TrimSpace(intent.Commodity)) != commodity {
			continue
		}
		if want := strings.ToLower(strings.TrimSpace(intent.Region)); want != "" && region != "" && !strings.Contains(region, want) {
			continue
		}
		sum += intent.Confidence
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

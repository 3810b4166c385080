// ABOUTME: Per-factor match functions scoring one listing against one criteria
// ABOUTME: Any missing input yields the neutral value so absent preferences never penalize

package ranking

import (
	"strings"

	"listings-aggregator-api/core/domain"
)

// Neutral is the factor value used when a criterion or listing field is absent.
const Neutral = 0.5

// locationMismatch is the value for two known locations that do not overlap.
const locationMismatch = 0.2

// Weights are the fixed coefficients of the base score. They sum to 1.
type Weights struct {
	Price        float64
	Quantity     float64
	Location     float64
	Quality      float64
	SocialImpact float64
}

// DefaultWeights is the weighting used by the ranking engine.
var DefaultWeights = Weights{
	Price:        0.30,
	Quantity:     0.20,
	Location:     0.20,
	Quality:      0.15,
	SocialImpact: 0.15,
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Price + w.Quantity + w.Location + w.Quality + w.SocialImpact
}

// Score combines factors into a weighted score.
func (w Weights) Score(f domain.MatchingFactors) float64 {
	return f.PriceMatch*w.Price +
		f.QuantityMatch*w.Quantity +
		f.LocationMatch*w.Location +
		f.QualityMatch*w.Quality +
		f.SocialImpactMatch*w.SocialImpact
}

// ScoreFactors computes every matching factor for listing under criteria.
func ScoreFactors(criteria domain.Criteria, listing domain.NormalizedListing) domain.MatchingFactors {
	return domain.MatchingFactors{
		PriceMatch:        PriceMatch(criteria, listing),
		QuantityMatch:     QuantityMatch(criteria, listing),
		LocationMatch:     LocationMatch(criteria, listing),
		QualityMatch:      QualityMatch(criteria, listing),
		SocialImpactMatch: SocialImpactMatch(criteria, listing),
	}
}

// PriceMatch is 1 at or under budget and falls linearly to 0 at twice the budget.
func PriceMatch(criteria domain.Criteria, listing domain.NormalizedListing) float64 {
	budget, ok := criteria.Budget()
	if !ok || listing.PricePerUnit == nil {
		return Neutral
	}
	price := *listing.PricePerUnit
	if price <= budget {
		return 1
	}
	return max(0, 1-(price-budget)/budget)
}

// QuantityMatch is the share of the required quantity the listing can supply.
func QuantityMatch(criteria domain.Criteria, listing domain.NormalizedListing) float64 {
	if criteria.MinQuantity == nil || listing.Quantity == nil || *criteria.MinQuantity <= 0 {
		return Neutral
	}
	return clamp(*listing.Quantity / *criteria.MinQuantity)
}

// LocationMatch is 1 when either region name contains the other.
func LocationMatch(criteria domain.Criteria, listing domain.NormalizedListing) float64 {
	want := strings.ToLower(strings.TrimSpace(criteria.Region))
	have := strings.ToLower(strings.TrimSpace(listing.Region))
	if want == "" || have == "" {
		return Neutral
	}
	if strings.Contains(want, have) || strings.Contains(have, want) {
		return 1
	}
	return locationMismatch
}

// QualityMatch is the fraction of requirement words that appear inside some
// word of the listing's quality description.
func QualityMatch(criteria domain.Criteria, listing domain.NormalizedListing) float64 {
	required := strings.Fields(strings.ToLower(criteria.QualityRequirements))
	described := strings.Fields(strings.ToLower(listing.QualitySpecs))
	if len(required) == 0 || len(described) == 0 {
		return Neutral
	}

	matches := 0
	for _, word := range required {
		for _, token := range described {
			if strings.Contains(token, word) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(required))
}

// SocialImpactMatch blends the listing's normalized impact score with the
// neutral value according to how much the buyer prioritizes impact.
func SocialImpactMatch(criteria domain.Criteria, listing domain.NormalizedListing) float64 {
	if criteria.SocialImpactPriority == nil || listing.SocialImpactScore == nil {
		return Neutral
	}
	normalized := clamp(*listing.SocialImpactScore / 100)
	priority := clamp(*criteria.SocialImpactPriority)
	return normalized*priority + Neutral*(1-priority)
}

// Quality labels a score.
func Quality(score float64) domain.MatchQuality {
	switch {
	case score >= 0.8:
		return domain.MatchExcellent
	case score >= 0.6:
		return domain.MatchGood
	case score >= 0.4:
		return domain.MatchFair
	default:
		return domain.MatchPoor
	}
}

func clamp(v float64) float64 {
	return min(1, max(0, v))
}

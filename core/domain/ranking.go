// ABOUTME: Ranking domain models produced by the ranking engine
// ABOUTME: Defines matching factors, match quality labels and ranked results

package domain

// MatchQuality is a coarse label derived from a match score.
type MatchQuality string

const (
	MatchExcellent MatchQuality = "Excellent"
	MatchGood      MatchQuality = "Good"
	MatchFair      MatchQuality = "Fair"
	MatchPoor      MatchQuality = "Poor"
)

// MatchingFactors holds the per-factor match values, each in [0,1].
type MatchingFactors struct {
	PriceMatch        float64 `json:"priceMatch"`
	QuantityMatch     float64 `json:"quantityMatch"`
	LocationMatch     float64 `json:"locationMatch"`
	QualityMatch      float64 `json:"qualityMatch"`
	SocialImpactMatch float64 `json:"socialImpactMatch"`
}

// RankedResult is one listing scored against one criteria.
type RankedResult struct {
	Listing         NormalizedListing `json:"listing"`
	MatchScore      float64           `json:"matchScore"`
	MatchQuality    MatchQuality      `json:"matchQuality"`
	MatchingFactors MatchingFactors   `json:"matchingFactors"`

	// BaseScore is the weighted factor score before enhancer adjustments
	BaseScore float64 `json:"baseScore"`

	// Adjustments maps enhancer name to the delta it contributed
	Adjustments map[string]float64 `json:"adjustments,omitempty"`
}

// ABOUTME: Search criteria domain model supplied by callers of the aggregator
// ABOUTME: Optional numeric preferences are pointers so absence differs from zero

package domain

// Criteria holds the search, filter and preference parameters for one
// aggregation and ranking request. It is passed by value and never mutated.
type Criteria struct {
	// Commodity filters listings by commodity type (e.g. "coffee")
	Commodity string `json:"commodity,omitempty" yaml:"commodity,omitempty"`

	// Category is a coarser grouping than commodity (e.g. "grains")
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Region is the preferred origin or delivery region
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// PriceMin is the lower bound of the acceptable price per unit
	PriceMin *float64 `json:"priceMin,omitempty" yaml:"priceMin,omitempty"`

	// PriceMax is the buyer's budget per unit
	PriceMax *float64 `json:"priceMax,omitempty" yaml:"priceMax,omitempty"`

	// MinQuantity is the quantity the buyer needs
	MinQuantity *float64 `json:"minQuantity,omitempty" yaml:"minQuantity,omitempty"`

	// QualityRequirements is free text describing required quality attributes
	QualityRequirements string `json:"qualityRequirements,omitempty" yaml:"qualityRequirements,omitempty"`

	// SocialImpactPriority weights social impact in the score (0-1)
	SocialImpactPriority *float64 `json:"socialImpactPriority,omitempty" yaml:"socialImpactPriority,omitempty"`

	// MinSocialImpactScore excludes listings scoring below it (0-100)
	MinSocialImpactScore *float64 `json:"minSocialImpactScore,omitempty" yaml:"minSocialImpactScore,omitempty"`

	// Query is a free-text search string
	Query string `json:"query,omitempty" yaml:"query,omitempty"`
}

// Budget returns the buyer's maximum price per unit when one is stated.
func (c Criteria) Budget() (float64, bool) {
	if c.PriceMax == nil || *c.PriceMax <= 0 {
		return 0, false
	}
	return *c.PriceMax, true
}

// Float returns a pointer to v. It keeps literals readable in tests and
// connector code that fills optional fields.
func Float(v float64) *float64 {
	return &v
}

package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listings-aggregator-api/core/domain"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights.Sum(), 1e-9)
}

func TestPriceMatch(t *testing.T) {
	budget := domain.Criteria{PriceMax: domain.Float(100)}

	tests := []struct {
		name     string
		criteria domain.Criteria
		price    *float64
		expected float64
	}{
		{"under budget", budget, domain.Float(80), 1},
		{"at budget", budget, domain.Float(100), 1},
		{"25% over", budget, domain.Float(125), 0.75},
		{"double budget", budget, domain.Float(200), 0},
		{"far over clamps at zero", budget, domain.Float(500), 0},
		{"no price", budget, nil, Neutral},
		{"no budget", domain.Criteria{}, domain.Float(80), Neutral},
		{"zero budget is missing", domain.Criteria{PriceMax: domain.Float(0)}, domain.Float(80), Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceMatch(tt.criteria, domain.NormalizedListing{PricePerUnit: tt.price})
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestPriceMatch_NeutralWithoutBudget(t *testing.T) {
	for _, price := range []float64{0, 1, 99.5, 1e6} {
		assert.Equal(t, Neutral, PriceMatch(domain.Criteria{}, domain.NormalizedListing{PricePerUnit: domain.Float(price)}))
	}
}

func TestPriceMatch_Monotonic(t *testing.T) {
	criteria := domain.Criteria{PriceMax: domain.Float(250)}
	prev := 2.0
	for price := 100.0; price <= 600; price += 25 {
		got := PriceMatch(criteria, domain.NormalizedListing{PricePerUnit: domain.Float(price)})
		assert.LessOrEqual(t, got, prev, "price %v", price)
		prev = got
	}
}

func TestQuantityMatch(t *testing.T) {
	need := domain.Criteria{MinQuantity: domain.Float(10)}

	assert.Equal(t, 1.0, QuantityMatch(need, domain.NormalizedListing{Quantity: domain.Float(40)}))
	assert.InDelta(t, 0.5, QuantityMatch(need, domain.NormalizedListing{Quantity: domain.Float(5)}), 1e-9)
	assert.Equal(t, 0.0, QuantityMatch(need, domain.NormalizedListing{Quantity: domain.Float(0)}))
	assert.Equal(t, Neutral, QuantityMatch(need, domain.NormalizedListing{}))
	assert.Equal(t, Neutral, QuantityMatch(domain.Criteria{}, domain.NormalizedListing{Quantity: domain.Float(5)}))
	assert.Equal(t, Neutral, QuantityMatch(domain.Criteria{MinQuantity: domain.Float(0)}, domain.NormalizedListing{Quantity: domain.Float(5)}))
}

func TestLocationMatch(t *testing.T) {
	tests := []struct {
		want, have string
		expected   float64
	}{
		{"Kisumu", "kisumu", 1},
		{"Western Kenya", "kenya", 1},
		{"Kenya", "Nairobi, Kenya", 1},
		{"Kampala", "Nairobi", locationMismatch},
		{"", "Nairobi", Neutral},
		{"Nairobi", "", Neutral},
	}

	for _, tt := range tests {
		got := LocationMatch(domain.Criteria{Region: tt.want}, domain.NormalizedListing{Region: tt.have})
		assert.Equal(t, tt.expected, got, "%q vs %q", tt.want, tt.have)
	}
}

func TestQualityMatch(t *testing.T) {
	listing := domain.NormalizedListing{QualitySpecs: "Grade-A organic, moisture<13%"}

	assert.Equal(t, 1.0, QualityMatch(domain.Criteria{QualityRequirements: "organic grade"}, listing))
	assert.InDelta(t, 0.5, QualityMatch(domain.Criteria{QualityRequirements: "ORGANIC fairtrade"}, listing), 1e-9)
	assert.Equal(t, 0.0, QualityMatch(domain.Criteria{QualityRequirements: "fairtrade"}, listing))
	assert.Equal(t, Neutral, QualityMatch(domain.Criteria{QualityRequirements: "   "}, listing))
	assert.Equal(t, Neutral, QualityMatch(domain.Criteria{QualityRequirements: "organic"}, domain.NormalizedListing{}))
}

func TestSocialImpactMatch(t *testing.T) {
	listing := domain.NormalizedListing{SocialImpactScore: domain.Float(80)}

	assert.InDelta(t, 0.8, SocialImpactMatch(domain.Criteria{SocialImpactPriority: domain.Float(1)}, listing), 1e-9)
	assert.InDelta(t, 0.5, SocialImpactMatch(domain.Criteria{SocialImpactPriority: domain.Float(0)}, listing), 1e-9)
	assert.InDelta(t, 0.65, SocialImpactMatch(domain.Criteria{SocialImpactPriority: domain.Float(0.5)}, listing), 1e-9)
	assert.InDelta(t, 1.0, SocialImpactMatch(domain.Criteria{SocialImpactPriority: domain.Float(3)}, domain.NormalizedListing{SocialImpactScore: domain.Float(150)}), 1e-9)
	assert.Equal(t, Neutral, SocialImpactMatch(domain.Criteria{}, listing))
	assert.Equal(t, Neutral, SocialImpactMatch(domain.Criteria{SocialImpactPriority: domain.Float(1)}, domain.NormalizedListing{}))
}

func TestQuality(t *testing.T) {
	assert.Equal(t, domain.MatchExcellent, Quality(0.8))
	assert.Equal(t, domain.MatchGood, Quality(0.79))
	assert.Equal(t, domain.MatchGood, Quality(0.6))
	assert.Equal(t, domain.MatchFair, Quality(0.4))
	assert.Equal(t, domain.MatchPoor, Quality(0.39))
	assert.Equal(t, domain.MatchPoor, Quality(0))
}

package enhancers

import (
	"context"
	"strings"
	"time"

	"listings-aggregator-api/core/domain"
)

const (
	uncertaintyScale      = 0.1
	missingFieldWeight    = 0.5
	agePenaltyPerDay      = 0.1
	maxAgePenalty         = 2.0
	hoursPerDay           = 24
	UncertaintyPenaltyKey = "uncertainty_penalty"
)

// Uncertainty penalizes listings with missing fields or a stale listing date.
type Uncertainty struct {
	now func() time.Time
}

// NewUncertainty creates the enhancer. A nil clock uses time.Now.
func NewUncertainty(now func() time.Time) *Uncertainty {
	if now == nil {
		now = time.Now
	}
	return &Uncertainty{now: now}
}

func (u *Uncertainty) Name() string { return UncertaintyPenaltyKey }

// Delta is never positive.
func (u *Uncertainty) Delta(_ context.Context, listing domain.NormalizedListing, _ domain.Criteria) (float64, error) {
	raw := missingFieldWeight*float64(MissingFields(listing)) + min(u.ageDays(listing)*agePenaltyPerDay, maxAgePenalty)
	return -uncertaintyScale * raw, nil
}

func (u *Uncertainty) ageDays(listing domain.NormalizedListing) float64 {
	if listing.ListedAt == nil {
		return 0
	}
	age := u.now().Sub(*listing.ListedAt)
	if age <= 0 {
		return 0
	}
	return age.Hours() / hoursPerDay
}

// MissingFields counts the ranking-relevant fields a listing leaves empty.
func MissingFields(listing domain.NormalizedListing) int {
	missing := 0
	if listing.PricePerUnit == nil {
		missing++
	}
	if listing.Quantity == nil {
		missing++
	}
	if strings.TrimSpace(listing.Region) == "" {
		missing++
	}
	if strings.TrimSpace(listing.QualitySpecs) == "" {
		missing++
	}
	if listing.SocialImpactScore == nil {
		missing++
	}
	if strings.TrimSpace(listing.Counterparty) == "" {
		missing++
	}
	return missing
}

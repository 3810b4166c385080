// ABOUTME: Normalized listing model shared by every connector
// ABOUTME: Decouples ranking from source-specific record shapes

package domain

import "time"

// NormalizedListing is the unified record every connector produces.
// Connectors own normalization; the core never inspects source shapes.
type NormalizedListing struct {
	// ID is unique within the producing source
	ID string `json:"id"`

	// Source is the name of the connector that produced the listing
	Source string `json:"source"`

	// Counterparty is the seller (or buyer, for demand-side signals)
	Counterparty string `json:"counterparty,omitempty"`

	// Commodity is the commodity type offered
	Commodity string `json:"commodity,omitempty"`

	// Quantity is the quantity available
	Quantity *float64 `json:"quantity,omitempty"`

	// Unit is the unit of Quantity (e.g. "kg", "t")
	Unit string `json:"unit,omitempty"`

	// PricePerUnit is the asking price for one Unit
	PricePerUnit *float64 `json:"pricePerUnit,omitempty"`

	// Currency is the ISO code of PricePerUnit
	Currency string `json:"currency,omitempty"`

	// Region is where the goods originate or are delivered
	Region string `json:"region,omitempty"`

	// QualitySpecs is free text describing quality attributes
	QualitySpecs string `json:"qualitySpecs,omitempty"`

	// SocialImpactScore is a 0-100 score assigned by the source
	SocialImpactScore *float64 `json:"socialImpactScore,omitempty"`

	// SocialImpactCategory labels the kind of impact (e.g. "fair-trade")
	SocialImpactCategory string `json:"socialImpactCategory,omitempty"`

	// Metadata carries source-specific extras untouched by the core
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// RelevanceScore is an optional score precomputed by the source
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`

	// ListedAt is when the listing was published or last refreshed
	ListedAt *time.Time `json:"listedAt,omitempty"`
}

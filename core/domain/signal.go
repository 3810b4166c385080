// ABOUTME: Soft-signal domain model for buyer intent records
// ABOUTME: Consumed by the soft-signal connector and the belief enhancer

package domain

import "time"

// BuyerIntent is a demand-side signal recorded in the soft-signal store.
type BuyerIntent struct {
	ID         string    `json:"id" yaml:"id"`
	Buyer      string    `json:"buyer" yaml:"buyer"`
	Commodity  string    `json:"commodity" yaml:"commodity"`
	Region     string    `json:"region,omitempty" yaml:"region,omitempty"`
	Quantity   *float64  `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit       string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	MaxPrice   *float64  `json:"maxPrice,omitempty" yaml:"maxPrice,omitempty"`
	Currency   string    `json:"currency,omitempty" yaml:"currency,omitempty"`
	Notes      string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Confidence float64   `json:"confidence" yaml:"confidence"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
}

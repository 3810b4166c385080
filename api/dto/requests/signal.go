package requests

import "time"

// SignalRequest represents the request body for POST /signals
type SignalRequest struct {
	Buyer      string     `json:"buyer,omitempty" maxLength:"200"`
	Commodity  string     `json:"commodity" minLength:"1" maxLength:"100"`
	Region     string     `json:"region,omitempty" maxLength:"200"`
	Quantity   *float64   `json:"quantity,omitempty" minimum:"0"`
	Unit       string     `json:"unit,omitempty" maxLength:"32"`
	MaxPrice   *float64   `json:"maxPrice,omitempty" minimum:"0"`
	Currency   string     `json:"currency,omitempty" maxLength:"8"`
	Notes      string     `json:"notes,omitempty" maxLength:"2000"`
	Confidence float64    `json:"confidence" minimum:"0" maximum:"1" doc:"How likely the buyer is to transact, 0 to 1"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

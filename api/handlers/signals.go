// ABOUTME: Soft-signal handlers for the Huma API
// ABOUTME: Appends buyer intents to the signal store

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"listings-aggregator-api/api/dto/requests"
	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

// SignalHandler handles buyer intent submissions
type SignalHandler struct {
	store interfaces.SignalStore
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(store interfaces.SignalStore) *SignalHandler {
	return &SignalHandler{store: store}
}

// RegisterRoutes registers the signal routes
func (h *SignalHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "appendSignal",
		Method:        http.MethodPost,
		Path:          "/signals",
		Summary:       "Record a buyer intent",
		Description:   "Appends a buyer intent to the soft-signal store. Intents feed the soft-signal connector and the belief boost.",
		Tags:          []string{"Signals"},
		DefaultStatus: http.StatusCreated,
	}, h.Append)
}

// SignalInput defines the input for the Append operation
type SignalInput struct {
	Body requests.SignalRequest
}

// SignalOutput defines the output for the Append operation
type SignalOutput struct {
	Body responses.SignalResponse
}

// Append handles POST /signals
func (h *SignalHandler) Append(ctx context.Context, input *SignalInput) (*SignalOutput, error) {
	b := input.Body
	intent := domain.BuyerIntent{
		Buyer:      b.Buyer,
		Commodity:  b.Commodity,
		Region:     b.Region,
		Quantity:   b.Quantity,
		Unit:       b.Unit,
		MaxPrice:   b.MaxPrice,
		Currency:   b.Currency,
		Notes:      b.Notes,
		Confidence: b.Confidence,
	}
	// assigned here so the response carries the stored values
	intent.ID = uuid.NewString()
	intent.CreatedAt = time.Now().UTC()
	if b.CreatedAt != nil {
		intent.CreatedAt = *b.CreatedAt
	}

	if err := h.store.Append(ctx, intent); err != nil {
		return nil, toHumaError(ctx, err)
	}

	return &SignalOutput{Body: responses.SignalResponse{OK: true, Intent: intent}}, nil
}

// ABOUTME: Aggregation and search handlers for the Huma API
// ABOUTME: Fans criteria out to connectors and optionally ranks the merged listings

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"listings-aggregator-api/api/dto/mappers"
	"listings-aggregator-api/api/dto/requests"
	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/core/search"
)

// SearchService interface defines the methods needed from the search service
type SearchService interface {
	Aggregate(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error)
	Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error)
}

// AggregateHandler handles aggregation and search requests
type AggregateHandler struct {
	service SearchService
}

// NewAggregateHandler creates a new aggregate handler
func NewAggregateHandler(service SearchService) *AggregateHandler {
	return &AggregateHandler{service: service}
}

// RegisterRoutes registers the aggregation routes
func (h *AggregateHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "aggregate",
		Method:      http.MethodPost,
		Path:        "/aggregate",
		Summary:     "Aggregate listings from connectors",
		Description: "Queries the requested connectors (all registered ones when none are named) under bounded concurrency and a per-connector timeout, and merges whatever comes back. Connector failures are reported in meta.failures.",
		Tags:        []string{"Aggregation"},
	}, h.Aggregate)

	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodPost,
		Path:        "/search",
		Summary:     "Aggregate and rank listings",
		Description: "Runs an aggregation and ranks the merged listings against the criteria with a weighted multi-factor match score.",
		Tags:        []string{"Aggregation"},
	}, h.Search)
}

// AggregateInput defines the input for the Aggregate operation
type AggregateInput struct {
	Body requests.AggregateRequest
}

// AggregateOutput defines the output for the Aggregate operation
type AggregateOutput struct {
	Body responses.AggregateResponse
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	Body requests.SearchRequest
}

// SearchOutput defines the output for the Search operation
type SearchOutput struct {
	Body responses.SearchResponse
}

// Aggregate handles POST /aggregate
func (h *AggregateHandler) Aggregate(ctx context.Context, input *AggregateInput) (*AggregateOutput, error) {
	result, err := h.service.Aggregate(ctx, search.SearchRequest{
		Criteria:   input.Body.Criteria,
		Connectors: input.Body.Connectors,
		Options:    input.Body.ToOptions(),
	})
	if err != nil {
		return nil, toHumaError(ctx, err)
	}

	return &AggregateOutput{Body: mappers.ToAggregateResponse(result)}, nil
}

// Search handles POST /search
func (h *AggregateHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := h.service.Search(ctx, search.SearchRequest{
		Criteria:   input.Body.Criteria,
		Connectors: input.Body.Connectors,
		Options:    input.Body.ToOptions(),
		Limit:      input.Body.Limit,
	})
	if err != nil {
		return nil, toHumaError(ctx, err)
	}

	return &SearchOutput{Body: mappers.ToSearchResponse(result)}, nil
}

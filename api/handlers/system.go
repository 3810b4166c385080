// ABOUTME: System handlers for the Huma API
// ABOUTME: Connector listing, health check and the Prometheus metrics endpoint

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/pkg/featureflags"
)

// ConnectorLister exposes the registered connector names
type ConnectorLister interface {
	Names() []string
	Len() int
}

// SystemHandler handles connector listing, health and metrics
type SystemHandler struct {
	connectors ConnectorLister
	flags      featureflags.Manager
	metrics    http.Handler
}

// NewSystemHandler creates a new system handler. metrics may be nil.
func NewSystemHandler(connectors ConnectorLister, flags featureflags.Manager, metrics http.Handler) *SystemHandler {
	return &SystemHandler{connectors: connectors, flags: flags, metrics: metrics}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listConnectors",
		Method:      http.MethodGet,
		Path:        "/connectors",
		Summary:     "List registered connectors",
		Tags:        []string{"System"},
	}, h.ListConnectors)

	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)
}

// MountMetrics serves Prometheus exposition on GET /metrics when the
// metrics flag is enabled. The endpoint is plain text, so it bypasses huma.
func (h *SystemHandler) MountMetrics(router chi.Router) bool {
	if h.metrics == nil || h.flags == nil || !h.flags.IsEnabled(context.Background(), featureflags.MetricsEnabled) {
		return false
	}
	router.Method(http.MethodGet, "/metrics", h.metrics)
	return true
}

// ConnectorsOutput defines the output for the ListConnectors operation
type ConnectorsOutput struct {
	Body responses.ConnectorsResponse
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// ListConnectors handles GET /connectors
func (h *SystemHandler) ListConnectors(ctx context.Context, _ *struct{}) (*ConnectorsOutput, error) {
	return &ConnectorsOutput{Body: responses.ConnectorsResponse{OK: true, Connectors: h.connectors.Names()}}, nil
}

// Health handles GET /healthz. Flag states are listed when a manager is set.
func (h *SystemHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	body := responses.HealthResponse{
		OK:         true,
		Status:     "healthy",
		Connectors: h.connectors.Len(),
	}
	if h.flags != nil {
		body.Features = make(map[string]bool, len(featureflags.AllFlags))
		for flag, enabled := range h.flags.GetAllFlags() {
			body.Features[string(flag)] = enabled
		}
	}
	return &HealthOutput{Body: body}, nil
}

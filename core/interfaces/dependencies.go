// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache is the byte-level backend behind the result cache
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Metrics records connector and cache outcomes
	Metrics Metrics
}

// WithDefaults returns a copy with no-op implementations substituted for
// a nil Logger or Metrics so services never need nil checks.
func (d Dependencies) WithDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = NopLogger{}
	}
	if d.Metrics == nil {
		d.Metrics = NopMetrics{}
	}
	return d
}

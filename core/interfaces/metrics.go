package interfaces

import "time"

// Connector call outcomes reported to Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeTimeout = "timeout"
	OutcomeCached  = "cached"
)

// Metrics records aggregation outcomes. Implementations must be safe for
// concurrent use since connector tasks report from their own goroutines.
type Metrics interface {
	// ObserveConnector records one connector task outcome and its latency.
	ObserveConnector(name, outcome string, duration time.Duration)

	// ObserveCacheLookup records a result cache hit or miss.
	ObserveCacheLookup(hit bool)

	// ObserveEnhancerError records an enhancer that failed open.
	ObserveEnhancerError(name string)
}

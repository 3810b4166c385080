// ABOUTME: Aggregation result models returned by the orchestrator
// ABOUTME: Carries merged listings plus per-source success and failure accounting

package domain

// SourceSuccess records a connector that returned data.
type SourceSuccess struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Cached bool   `json:"cached"`
}

// SourceFailure records a connector that failed or timed out.
type SourceFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// AggregationMeta is the per-source accounting of one aggregation call.
type AggregationMeta struct {
	Successes []SourceSuccess `json:"successes"`
	Failures  []SourceFailure `json:"failures"`
}

// AggregationResult is the merged output of one fan-out/fan-in call.
type AggregationResult struct {
	Meta    AggregationMeta     `json:"meta"`
	Results []NormalizedListing `json:"results"`
}

// TotalSuccessCount sums Count over all successes.
func (r *AggregationResult) TotalSuccessCount() int {
	total := 0
	for _, s := range r.Meta.Successes {
		total += s.Count
	}
	return total
}

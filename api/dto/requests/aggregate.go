// ABOUTME: Request DTOs for the aggregation and search endpoints
// ABOUTME: Carries criteria, the connector credential map and per-call options

package requests

import (
	"time"

	"listings-aggregator-api/core/aggregate"
	"listings-aggregator-api/core/domain"
)

// AggregateOptions tunes one aggregation call
type AggregateOptions struct {
	// TimeoutMs overrides the per-connector timeout; 0 disables it
	TimeoutMs *int `json:"timeoutMs,omitempty" minimum:"0" maximum:"120000" doc:"Per-connector timeout in milliseconds, 0 disables the timeout"`

	Concurrency int `json:"concurrency,omitempty" minimum:"0" maximum:"64" doc:"Maximum connectors in flight"`

	NoCache bool `json:"noCache,omitempty" doc:"Bypass the result cache for this call"`
}

// AggregateRequest represents the request body for POST /aggregate
type AggregateRequest struct {
	Criteria domain.Criteria `json:"criteria" doc:"Search criteria passed to every connector"`

	// Connectors maps connector name to its credential token. Empty means all.
	Connectors map[string]string `json:"connectors,omitempty" doc:"Connector name to credential token; omit to query every registered connector"`

	Options *AggregateOptions `json:"options,omitempty" doc:"Optional aggregation settings"`
}

// SearchRequest represents the request body for POST /search
type SearchRequest struct {
	AggregateRequest

	Limit int `json:"limit,omitempty" minimum:"0" maximum:"500" doc:"Maximum ranked results, 0 for all"`
}

// ToOptions converts the wire options to orchestrator options
func (r *AggregateRequest) ToOptions() aggregate.Options {
	if r.Options == nil {
		return aggregate.Options{}
	}
	opts := aggregate.Options{
		Concurrency: r.Options.Concurrency,
		NoCache:     r.Options.NoCache,
	}
	if r.Options.TimeoutMs != nil {
		timeout := time.Duration(*r.Options.TimeoutMs) * time.Millisecond
		opts.Timeout = &timeout
	}
	return opts
}

// ABOUTME: Prometheus implementation of the aggregation metrics recorder
// ABOUTME: Owns a private registry exposed through promhttp

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"listings-aggregator-api/core/interfaces"
)

const namespace = "listings_aggregator"

// Recorder implements interfaces.Metrics
type Recorder struct {
	registry *prometheus.Registry

	connectorCalls    *prometheus.CounterVec
	connectorDuration *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	enhancerErrors    *prometheus.CounterVec
}

var _ interfaces.Metrics = (*Recorder)(nil)

// NewRecorder registers the aggregation collectors plus the Go runtime and
// process collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		connectorCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connector_calls_total",
			Help:      "Connector task outcomes by connector and outcome",
		}, []string{"connector", "outcome"}),
		connectorDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "connector_duration_seconds",
			Help:      "Connector task latency including timeouts",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"connector"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_cache_lookups_total",
			Help:      "Result cache lookups by result",
		}, []string{"result"}),
		enhancerErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enhancer_errors_total",
			Help:      "Score enhancers that failed open",
		}, []string{"enhancer"}),
	}
}

// ObserveConnector records one task outcome. Cached outcomes carry no latency.
func (r *Recorder) ObserveConnector(name, outcome string, duration time.Duration) {
	r.connectorCalls.WithLabelValues(name, outcome).Inc()
	if outcome != interfaces.OutcomeCached {
		r.connectorDuration.WithLabelValues(name).Observe(duration.Seconds())
	}
}

func (r *Recorder) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveEnhancerError(name string) {
	r.enhancerErrors.WithLabelValues(name).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

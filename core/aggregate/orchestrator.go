// ABOUTME: Aggregation orchestrator fanning one criteria out to many connectors
// ABOUTME: Merges partial results and reports per-source successes and failures

package aggregate

import (
	"context"
	"sort"
	"time"

	"listings-aggregator-api/core/connector"
	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
)

// DefaultTimeout bounds each connector call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Config holds orchestrator defaults, overridable per request through Options.
type Config struct {
	// Concurrency caps simultaneous connector calls per aggregation
	Concurrency int

	// Timeout bounds each connector call; <= 0 disables the guard
	Timeout time.Duration

	// Credentials fill in a connector's credential when the request leaves it empty
	Credentials map[string]string
}

// DefaultConfig returns the default orchestrator configuration
func DefaultConfig() Config {
	return Config{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
	}
}

// Options are per-request overrides.
type Options struct {
	// Timeout overrides Config.Timeout when set
	Timeout *time.Duration

	// Concurrency overrides Config.Concurrency when > 0
	Concurrency int

	// NoCache bypasses cache lookup and write for this call
	NoCache bool
}

// Task is one connector invocation planned for an aggregation call.
type Task struct {
	Name       string
	Credential string
	Connector  connector.Connector
	CacheKey   string
}

type taskOutcome struct {
	listings []domain.NormalizedListing
	cached   bool
	err      error
}

// Orchestrator composes registry, cache, limiter and timeout guard into one
// fan-out/fan-in request.
type Orchestrator struct {
	registry *connector.Registry
	cache    *ResultCache
	config   Config
	logger   interfaces.Logger
	metrics  interfaces.Metrics
}

// NewOrchestrator creates an orchestrator. A nil cache disables caching.
func NewOrchestrator(registry *connector.Registry, cache *ResultCache, deps interfaces.Dependencies, cfg Config) *Orchestrator {
	deps = deps.WithDefaults()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		registry: registry,
		cache:    cache,
		config:   cfg,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

// Cache returns the orchestrator's result cache, which may be nil
func (o *Orchestrator) Cache() *ResultCache {
	return o.cache
}

// Registry returns the connector registry
func (o *Orchestrator) Registry() *connector.Registry {
	return o.registry
}

// Aggregate fans criteria out to the requested connectors (name to
// credential) and waits for every task to settle. With no names requested
// every registered connector is used. The only returned error is
// *errors.NoConnectorsRequestedError; connector failures land in Meta.
func (o *Orchestrator) Aggregate(ctx context.Context, requested map[string]string, criteria domain.Criteria, opts Options) (*domain.AggregationResult, error) {
	tasks := o.BuildTasks(requested, criteria)
	if len(tasks) == 0 {
		return nil, &errors.NoConnectorsRequestedError{Requested: sortedKeys(requested)}
	}

	timeout := o.config.Timeout
	if opts.Timeout != nil {
		timeout = *opts.Timeout
	}
	concurrency := o.config.Concurrency
	if opts.Concurrency > 0 {
		concurrency = opts.Concurrency
	}

	outcomes := make([]taskOutcome, len(tasks))
	limiter := NewLimiter(concurrency)

	for i, task := range tasks {
		if !opts.NoCache && o.cache != nil {
			if cached, ok := o.cache.Get(ctx, task.CacheKey); ok {
				outcomes[i] = taskOutcome{listings: cached, cached: true}
				o.metrics.ObserveConnector(task.Name, interfaces.OutcomeCached, 0)
				continue
			}
		}

		i, task := i, task
		err := limiter.Schedule(ctx, func() {
			outcomes[i] = o.runTask(ctx, task, criteria, timeout, opts.NoCache)
		})
		if err != nil {
			outcomes[i] = taskOutcome{err: &errors.ConnectorRuntimeError{Name: task.Name, Cause: err}}
		}
	}

	limiter.Wait()

	return o.merge(tasks, outcomes), nil
}

// BuildTasks resolves requested connector names into tasks in sorted name
// order. Unknown names are logged and dropped.
func (o *Orchestrator) BuildTasks(requested map[string]string, criteria domain.Criteria) []Task {
	credentials := requested
	if len(credentials) == 0 {
		credentials = make(map[string]string)
		for _, name := range o.registry.Names() {
			credentials[name] = ""
		}
	}

	tasks := make([]Task, 0, len(credentials))
	for _, name := range sortedKeys(credentials) {
		c, err := o.registry.Resolve(name)
		if err != nil {
			o.logger.Warn("Connector not registered, skipping", map[string]interface{}{
				"connector": name,
				"error":     err.Error(),
			})
			continue
		}
		credential := credentials[name]
		if credential == "" {
			credential = o.config.Credentials[name]
		}
		tasks = append(tasks, Task{
			Name:       name,
			Credential: credential,
			Connector:  c,
			CacheKey:   CacheKey(name, criteria),
		})
	}
	return tasks
}

// runTask invokes one connector through the timeout guard and writes
// successful results through to the cache.
func (o *Orchestrator) runTask(ctx context.Context, task Task, criteria domain.Criteria, timeout time.Duration, noCache bool) taskOutcome {
	start := time.Now()
	listings, err := WithTimeout(ctx, task.Name, timeout, func(callCtx context.Context) ([]domain.NormalizedListing, error) {
		return task.Connector.FetchAndNormalize(callCtx, task.Credential, criteria)
	})
	duration := time.Since(start)

	if err != nil {
		outcome := interfaces.OutcomeFailure
		if errors.IsTimeout(err) {
			outcome = interfaces.OutcomeTimeout
		}
		o.metrics.ObserveConnector(task.Name, outcome, duration)
		o.logger.Warn("Connector failed", map[string]interface{}{
			"connector":   task.Name,
			"error":       err.Error(),
			"duration_ms": duration.Milliseconds(),
		})
		return taskOutcome{err: err}
	}

	listings = stampSource(task.Name, listings)
	if !noCache && o.cache != nil {
		o.cache.Set(ctx, task.CacheKey, listings)
	}

	o.metrics.ObserveConnector(task.Name, interfaces.OutcomeSuccess, duration)
	o.logger.Debug("Connector succeeded", map[string]interface{}{
		"connector":   task.Name,
		"count":       len(listings),
		"duration_ms": duration.Milliseconds(),
	})
	return taskOutcome{listings: listings}
}

// merge combines outcomes in task order so the merged list does not depend
// on which connector finished first.
func (o *Orchestrator) merge(tasks []Task, outcomes []taskOutcome) *domain.AggregationResult {
	result := &domain.AggregationResult{
		Meta: domain.AggregationMeta{
			Successes: []domain.SourceSuccess{},
			Failures:  []domain.SourceFailure{},
		},
		Results: []domain.NormalizedListing{},
	}

	for i, task := range tasks {
		out := outcomes[i]
		if out.err != nil {
			result.Meta.Failures = append(result.Meta.Failures, domain.SourceFailure{
				Name:  task.Name,
				Error: out.err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, out.listings...)
		result.Meta.Successes = append(result.Meta.Successes, domain.SourceSuccess{
			Name:   task.Name,
			Count:  len(out.listings),
			Cached: out.cached,
		})
	}

	if len(result.Meta.Successes) == 0 && len(result.Meta.Failures) > 0 {
		o.logger.Warn("All connectors failed", map[string]interface{}{
			"failures": len(result.Meta.Failures),
		})
	}

	return result
}

// stampSource returns a copy of listings with Source defaulted to name.
func stampSource(name string, listings []domain.NormalizedListing) []domain.NormalizedListing {
	stamped := make([]domain.NormalizedListing, len(listings))
	copy(stamped, listings)
	for i := range stamped {
		if stamped[i].Source == "" {
			stamped[i].Source = name
		}
	}
	return stamped
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"listings-aggregator-api/core/connector"
	"listings-aggregator-api/core/domain"
)

// mapCache is an in-memory interfaces.Cache with optional failure injection
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getFunc func(ctx context.Context, key string) ([]byte, error)
	setErr  error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", key)
	}
	return v, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mapCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]interface{}{"entries": len(m.data)}, nil
}

func (m *mapCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *mapCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// countingConnector counts invocations and returns fixed listings
type countingConnector struct {
	mu       sync.Mutex
	name     string
	calls    int
	listings []domain.NormalizedListing
}

func (c *countingConnector) Name() string { return c.name }

func (c *countingConnector) FetchAndNormalize(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.listings, nil
}

func (c *countingConnector) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// warnLogger records warning messages
type warnLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *warnLogger) Debug(string, map[string]interface{}) {}
func (l *warnLogger) Info(string, map[string]interface{})  {}
func (l *warnLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}
func (l *warnLogger) Error(string, map[string]interface{}) {}

func (l *warnLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

func listing(id string) domain.NormalizedListing {
	return domain.NormalizedListing{ID: id, Commodity: "maize"}
}

func staticConnector(name string, listings ...domain.NormalizedListing) connector.Connector {
	return connector.ConnectorFunc(name, func(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
		return listings, nil
	})
}

func failingConnector(name string, err error) connector.Connector {
	return connector.ConnectorFunc(name, func(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
		return nil, err
	})
}

// hangingConnector blocks until release is closed, ignoring ctx
func hangingConnector(name string, release <-chan struct{}) connector.Connector {
	return connector.ConnectorFunc(name, func(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
		<-release
		return []domain.NormalizedListing{listing(name + "-late")}, nil
	})
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

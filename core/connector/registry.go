// ABOUTME: Connector registry resolves connector names to implementations
// ABOUTME: Registration happens once at startup and never on the request path

package connector

import (
	"fmt"
	"sort"
	"sync"

	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
)

// Registry maps connector names to implementations.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
	logger     interfaces.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger interfaces.Logger) *Registry {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Registry{
		connectors: make(map[string]Connector),
		logger:     logger,
	}
}

// Register adds a connector. Malformed or duplicate connectors are rejected
// and logged; entries already registered are unaffected.
func (r *Registry) Register(c Connector) error {
	name, reason := wellFormed(c)
	if reason != "" {
		r.logger.Warn("Skipping malformed connector", map[string]interface{}{
			"reason": reason,
		})
		return &errors.ValidationError{Field: "connector", Message: reason}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[name]; exists {
		r.logger.Warn("Skipping duplicate connector", map[string]interface{}{
			"connector": name,
		})
		return &errors.ValidationError{Field: "connector", Message: fmt.Sprintf("duplicate connector name %q", name)}
	}

	r.connectors[name] = c
	r.logger.Info("Registered connector", map[string]interface{}{
		"connector": name,
	})
	return nil
}

// RegisterAll registers each connector and returns how many were accepted.
func (r *Registry) RegisterAll(cs ...Connector) int {
	accepted := 0
	for _, c := range cs {
		if err := r.Register(c); err == nil {
			accepted++
		}
	}
	return accepted
}

// Resolve returns the connector registered under name.
func (r *Registry) Resolve(name string) (Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.connectors[name]
	if !ok {
		return nil, &errors.ConnectorNotFoundError{Name: name}
	}
	return c, nil
}

// Names returns the registered connector names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered connectors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connectors)
}

// ABOUTME: Connector contract implemented by every listing data source
// ABOUTME: Connectors fetch from their source and normalize into NormalizedListing

package connector

import (
	"context"
	"fmt"
	"reflect"

	"listings-aggregator-api/core/domain"
)

// Connector is a named data source exposing a uniform fetch-and-normalize call.
//
// FetchAndNormalize receives a context carrying the per-call deadline.
// Connectors should honour it; one that does not keeps running after a
// timeout and its result is discarded.
type Connector interface {
	Name() string
	FetchAndNormalize(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error)
}

// FetchFunc is the function shape behind a Connector.
type FetchFunc func(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error)

// funcConnector adapts a name and a FetchFunc into a Connector.
type funcConnector struct {
	name  string
	fetch FetchFunc
}

// ConnectorFunc builds a Connector from a name and a function. A nil fetch
// yields a connector the registry will reject as malformed.
func ConnectorFunc(name string, fetch FetchFunc) Connector {
	return &funcConnector{name: name, fetch: fetch}
}

func (c *funcConnector) Name() string {
	return c.name
}

func (c *funcConnector) FetchAndNormalize(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
	return c.fetch(ctx, credential, criteria)
}

// wellFormed reports whether c has a name and a callable fetch, and
// returns the name when it does.
func wellFormed(c Connector) (name string, reason string) {
	if c == nil {
		return "", "connector is nil"
	}
	if v := reflect.ValueOf(c); isNilable(v.Kind()) && v.IsNil() {
		return "", "connector is nil"
	}
	if fc, ok := c.(*funcConnector); ok && fc.fetch == nil {
		return "", "connector has no fetch function"
	}

	name, err := safeName(c)
	if err != nil {
		return "", err.Error()
	}
	if name == "" {
		return "", "connector has no name"
	}
	return name, ""
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return true
	}
	return false
}

func safeName(c Connector) (name string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("connector name panicked: %v", r)
		}
	}()
	return c.Name(), nil
}

package connector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(string, map[string]interface{}) {}

func staticConnector(name string, listings ...domain.NormalizedListing) Connector {
	return ConnectorFunc(name, func(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
		return listings, nil
	})
}

// namelessConnector implements Connector but reports an empty name
type namelessConnector struct{}

func (namelessConnector) Name() string { return "" }
func (namelessConnector) FetchAndNormalize(context.Context, string, domain.Criteria) ([]domain.NormalizedListing, error) {
	return nil, nil
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(staticConnector("internal")))

	c, err := r.Resolve("internal")
	require.NoError(t, err)
	assert.Equal(t, "internal", c.Name())
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry(nil)

	c, err := r.Resolve("ghost")
	assert.Nil(t, c)
	assert.True(t, errors.IsConnectorNotFound(err))
}

func TestRegistry_MalformedConnectorsExcluded(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRegistry(logger)

	accepted := r.RegisterAll(
		staticConnector("a"),
		ConnectorFunc("no-fetch", nil),
		namelessConnector{},
		nil,
		staticConnector("b"),
	)

	assert.Equal(t, 2, accepted)
	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Len(t, logger.warnings, 3)
}

// pointerConnector dereferences its receiver in Name, so a typed nil panics.
type pointerConnector struct {
	name string
}

func (p *pointerConnector) Name() string { return p.name }
func (p *pointerConnector) FetchAndNormalize(context.Context, string, domain.Criteria) ([]domain.NormalizedListing, error) {
	return nil, nil
}

type panickingNameConnector struct{}

func (panickingNameConnector) Name() string { panic("no name today") }
func (panickingNameConnector) FetchAndNormalize(context.Context, string, domain.Criteria) ([]domain.NormalizedListing, error) {
	return nil, nil
}

func TestRegistry_TypedNilAndPanickingConnectorsSkipped(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRegistry(logger)
	var typedNil *pointerConnector
	var nilFunc *funcConnector

	var accepted int
	require.NotPanics(t, func() {
		accepted = r.RegisterAll(
			typedNil,
			nilFunc,
			panickingNameConnector{},
			&pointerConnector{name: "ok"},
		)
	})

	assert.Equal(t, 1, accepted)
	assert.Equal(t, []string{"ok"}, r.Names())
	assert.Len(t, logger.warnings, 3)
}

func TestRegistry_DuplicateNameRejected(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(staticConnector("a")))

	err := r.Register(staticConnector("a"))
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry(nil)
	r.RegisterAll(staticConnector("zeta"), staticConnector("alpha"), staticConnector("mid"))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestConnectorFunc_Delegates(t *testing.T) {
	want := []domain.NormalizedListing{{ID: "1"}}
	var gotCredential string
	c := ConnectorFunc("x", func(ctx context.Context, credential string, criteria domain.Criteria) ([]domain.NormalizedListing, error) {
		gotCredential = credential
		return want, nil
	})

	got, err := c.FetchAndNormalize(context.Background(), "token", domain.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "token", gotCredential)
}

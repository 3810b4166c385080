// Package connectors holds the data sources registered with the aggregation
// orchestrator. Each subpackage wraps one external collaborator and owns the
// translation of its records into domain.NormalizedListing:
//
// - catalog: the marketplace listing store, behind a commodity allow-list
//   (registered as "internal")
// - softsignal: buyer intents from the soft-signal store
// - partnerfeed: a partner's RSS/Atom offers feed with market: extensions
//
// Connectors are registered once at startup:
//
//	registry := connector.NewRegistry(logger)
//	registry.RegisterAll(
//	    catalog.New(store, []string{"maize", "coffee"}),
//	    softsignal.New(signals),
//	    partnerfeed.New("agri-partner", feedURL, httpClient),
//	)
package connectors

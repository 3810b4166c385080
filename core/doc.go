// Package core contains the business logic of the listings aggregator.
// It is framework-agnostic and can be used independently of the HTTP layer
// or any storage backend.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure models (Criteria, NormalizedListing, RankedResult, BuyerIntent)
// - connector: The Connector contract and the explicit registry
// - aggregate: Fan-out/fan-in orchestrator, FIFO limiter, timeout guard, result cache
// - ranking: Weighted multi-factor scoring; enhancers/ holds score adjustments
// - search: Request boundary combining aggregation and ranking
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, metrics, stores)
//
// # Design Principles
//
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Connectors own normalization; the core never inspects source shapes
//
// # Usage Example
//
//	registry := connector.NewRegistry(logger)
//	registry.RegisterAll(catalog.New(store, nil), softsignal.New(signals))
//
//	deps := interfaces.Dependencies{Cache: backend, Logger: logger}
//	orch := aggregate.NewOrchestrator(registry, aggregate.NewResultCache(deps, time.Minute), deps, aggregate.DefaultConfig())
//	svc := search.NewSearchService(orch, ranking.NewEngine(), deps)
//
//	resp, err := svc.Search(ctx, search.SearchRequest{
//	    Criteria: domain.Criteria{Commodity: "maize", PriceMax: domain.Float(0.4)},
//	})
package core

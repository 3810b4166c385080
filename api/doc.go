// Package api provides the HTTP API layer for the listings aggregator.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	POST   /aggregate     fan out to connectors and merge
//	POST   /search        aggregate, then rank against the criteria
//	POST   /signals       record a buyer intent
//	GET    /connectors    list registered connectors
//	GET    /cache/stats   result cache counters
//	DELETE /cache         clear the result cache
//	GET    /healthz       health check
//	GET    /metrics       Prometheus exposition (feature flagged)
//
// # Usage Example
//
//	limiter := middleware.NewRateLimiter(100, time.Minute)
//	defer limiter.Stop()
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: limiter,
//	})
//
//	handlers.NewAggregateHandler(searchService).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Every failed request, including schema validation failures, returns
//
//	{
//	    "ok": false,
//	    "error": "criteria.priceMin: cannot exceed priceMax"
//	}
//
// with an optional "details" array. Domain errors map to status codes in
// handlers/errors.go.
package api

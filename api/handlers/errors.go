// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP responses shaped as {"ok": false, "error": "..."}

package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/api/middleware"
	"listings-aggregator-api/core/errors"
	"listings-aggregator-api/core/interfaces"
)

var (
	installOnce sync.Once

	loggerMu    sync.RWMutex
	errorLogger interfaces.Logger = interfaces.NopLogger{}
)

// SetErrorLogger sets where the causes of server errors are logged. Those
// causes never reach the response body.
func SetErrorLogger(logger interfaces.Logger) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	loggerMu.Lock()
	errorLogger = logger
	loggerMu.Unlock()
}

func logServerError(ctx context.Context, status int, err error) {
	loggerMu.RLock()
	logger := errorLogger
	loggerMu.RUnlock()

	logger.Error("Request failed", map[string]interface{}{
		"status":     status,
		"error":      err.Error(),
		"request_id": middleware.RequestIDFromContext(ctx),
	})
}

// InstallErrorModel makes huma render every error, including its own
// request validation failures, as a responses.ErrorResponse.
func InstallErrorModel() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return responses.NewErrorResponse(status, msg, errs...)
		}
	})
}

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Server errors are logged and answered with a generic message only.
func toHumaError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNoConnectors(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			logServerError(ctx, http.StatusServiceUnavailable, err)
			return huma.Error503ServiceUnavailable("External service error")
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 400:
			return huma.Error400BadRequest("External service request error", err)
		default:
			logServerError(ctx, http.StatusInternalServerError, err)
			return huma.Error500InternalServerError("Unexpected external service response")
		}
	}

	logServerError(ctx, http.StatusInternalServerError, err)
	return huma.Error500InternalServerError("Internal server error")
}

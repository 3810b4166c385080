// ABOUTME: Custom error types for the aggregation and ranking core
// ABOUTME: Separates per-connector failures from the one fatal request-level error

package errors

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// ConnectorNotFoundError is returned when a requested connector name is not
// registered. The orchestrator logs it and drops the task.
type ConnectorNotFoundError struct {
	Name string
}

// Error implements the error interface
func (e *ConnectorNotFoundError) Error() string {
	return fmt.Sprintf("connector not found: %s", e.Name)
}

// ConnectorTimeoutError is recorded when a connector misses its deadline.
type ConnectorTimeoutError struct {
	Name    string
	Timeout time.Duration
}

// Error implements the error interface
func (e *ConnectorTimeoutError) Error() string {
	return fmt.Sprintf("connector %s timed out after %dms", e.Name, e.Timeout.Milliseconds())
}

// ConnectorRuntimeError wraps an error (or recovered panic) raised by a connector.
type ConnectorRuntimeError struct {
	Name  string
	Cause error
}

// Error implements the error interface
func (e *ConnectorRuntimeError) Error() string {
	return fmt.Sprintf("connector %s failed: %v", e.Name, e.Cause)
}

// Unwrap returns the underlying connector error
func (e *ConnectorRuntimeError) Unwrap() error {
	return e.Cause
}

// NoConnectorsRequestedError is the only fatal aggregation error: no task
// could be built after name resolution and the fallback to all connectors.
type NoConnectorsRequestedError struct {
	Requested []string
}

// Error implements the error interface
func (e *NoConnectorsRequestedError) Error() string {
	if len(e.Requested) == 0 {
		return "no connectors requested and none registered"
	}
	return fmt.Sprintf("no connectors requested: none of %v are registered", e.Requested)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsConnectorNotFound checks if an error is a ConnectorNotFoundError
func IsConnectorNotFound(err error) bool {
	var nfErr *ConnectorNotFoundError
	return errors.As(err, &nfErr)
}

// IsTimeout checks if an error is a ConnectorTimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *ConnectorTimeoutError
	return errors.As(err, &timeoutErr)
}

// IsNoConnectors checks if an error is a NoConnectorsRequestedError
func IsNoConnectors(err error) bool {
	var noConnErr *NoConnectorsRequestedError
	return errors.As(err, &noConnErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-aggregator-api/api/dto/responses"
	"listings-aggregator-api/api/middleware"
	"listings-aggregator-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "nil error returns nil",
			input:          nil,
			expectedStatus: 0,
			expectedInMsg:  "",
		},
		{
			name:           "NoConnectorsRequestedError returns 400",
			input:          &errors.NoConnectorsRequestedError{Requested: []string{"ghost"}},
			expectedStatus: 400,
			expectedInMsg:  "no connectors requested",
		},
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "listing"},
			expectedStatus: 404,
			expectedInMsg:  "listing not found",
		},
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "limit", Message: "must be between 0 and 500"},
			expectedStatus: 400,
			expectedInMsg:  "validation error on field 'limit': must be between 0 and 500",
		},
		{
			name:           "ExternalAPIError with 500 returns 503",
			input:          &errors.ExternalAPIError{StatusCode: 500, Message: "server error"},
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "ExternalAPIError with 429 returns 429",
			input:          &errors.ExternalAPIError{StatusCode: 429, Message: "rate limited"},
			expectedStatus: 429,
			expectedInMsg:  "Rate limited by external service",
		},
		{
			name:           "ExternalAPIError with 404 returns 400",
			input:          &errors.ExternalAPIError{StatusCode: 404, Message: "not found"},
			expectedStatus: 400,
			expectedInMsg:  "External service request error",
		},
		{
			name:           "ExternalAPIError with unexpected status returns 500",
			input:          &errors.ExternalAPIError{StatusCode: 200, Message: "ok but error"},
			expectedStatus: 500,
			expectedInMsg:  "Unexpected external service response",
		},
		{
			name:           "wrapped ValidationError returns 400",
			input:          fmt.Errorf("context: %w", &errors.ValidationError{Field: "commodity", Message: "is required"}),
			expectedStatus: 400,
			expectedInMsg:  "validation error on field 'commodity': is required",
		},
		{
			name:           "wrapped ExternalAPIError returns 503",
			input:          errors.WrapError(&errors.ExternalAPIError{StatusCode: 502, API: "advisory"}, "adjustment"),
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(context.Background(), tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			statusErr, ok := result.(huma.StatusError)
			require.True(t, ok, "Expected huma.StatusError")
			assert.Equal(t, tt.expectedStatus, statusErr.GetStatus())
			assert.Contains(t, statusErr.Error(), tt.expectedInMsg)
		})
	}
}

func TestToHumaError_UsesErrorResponseBody(t *testing.T) {
	result := toHumaError(context.Background(), &errors.ValidationError{Field: "limit", Message: "too big"})

	body, ok := result.(*responses.ErrorResponse)
	require.True(t, ok)
	assert.False(t, body.OK)
	assert.Equal(t, 400, body.GetStatus())
}

func TestToHumaError_ServerErrorsHideCause(t *testing.T) {
	logger := &recordingLogger{}
	SetErrorLogger(logger)
	t.Cleanup(func() { SetErrorLogger(nil) })

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey{}, "req-42")
	cause := fmt.Errorf("decode signal store /var/lib/signals.json: unexpected end of JSON input")

	for _, input := range []error{
		cause,
		&errors.ExternalAPIError{StatusCode: 502, API: "advisory", Message: "upstream at 10.0.0.7 refused"},
	} {
		body, ok := toHumaError(ctx, input).(*responses.ErrorResponse)
		require.True(t, ok)
		assert.GreaterOrEqual(t, body.GetStatus(), 500)
		assert.Empty(t, body.Details)
		assert.NotContains(t, body.Message, "signals.json")
		assert.NotContains(t, body.Message, "10.0.0.7")
	}

	require.Len(t, logger.errors, 2)
	assert.Equal(t, cause.Error(), logger.errors[0]["error"])
	assert.Equal(t, "req-42", logger.errors[0]["request_id"])
}

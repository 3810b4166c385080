// ABOUTME: Timeout guard racing one connector call against a deadline
// ABOUTME: Late results are discarded; panics and errors become typed connector errors

package aggregate

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/errors"
)

// CallFunc is one connector invocation bound to its credential and criteria.
type CallFunc func(ctx context.Context) ([]domain.NormalizedListing, error)

type callOutcome struct {
	listings []domain.NormalizedListing
	err      error
}

// WithTimeout runs call under a deadline of timeout. A timeout <= 0 disables
// the guard and the call is awaited normally.
//
// On expiry it returns *errors.ConnectorTimeoutError and cancels the context
// handed to call. A connector that ignores that context keeps running
// detached; its eventual result lands in a buffered channel nobody reads.
func WithTimeout(ctx context.Context, name string, timeout time.Duration, call CallFunc) ([]domain.NormalizedListing, error) {
	if timeout <= 0 {
		out := invoke(ctx, name, call)
		return out.listings, out.err
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan callOutcome, 1)
	go func() {
		done <- invoke(callCtx, name, call)
	}()

	select {
	case out := <-done:
		if out.err != nil && stderrors.Is(out.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &errors.ConnectorTimeoutError{Name: name, Timeout: timeout}
		}
		return out.listings, out.err
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return nil, &errors.ConnectorRuntimeError{Name: name, Cause: ctx.Err()}
		}
		return nil, &errors.ConnectorTimeoutError{Name: name, Timeout: timeout}
	}
}

// invoke calls the connector, converting panics and plain errors into
// *errors.ConnectorRuntimeError.
func invoke(ctx context.Context, name string, call CallFunc) (out callOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = callOutcome{err: &errors.ConnectorRuntimeError{Name: name, Cause: fmt.Errorf("panic: %v", r)}}
		}
	}()

	listings, err := call(ctx)
	if err != nil {
		if errors.IsTimeout(err) {
			return callOutcome{err: err}
		}
		var runtimeErr *errors.ConnectorRuntimeError
		if stderrors.As(err, &runtimeErr) {
			return callOutcome{err: err}
		}
		return callOutcome{err: &errors.ConnectorRuntimeError{Name: name, Cause: err}}
	}
	return callOutcome{listings: listings}
}

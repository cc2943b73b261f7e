package review

import (
	"context"
	"net"
	"net/url"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/pkg/errors"
)

// TransportError means the API could not be reached. It is the only retryable failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RateLimitError means the API rejected the request with a rate limit response
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// AuthError means the API key was rejected
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is, or wraps, a *TransportError
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// classifyError maps an SDK error onto the review error taxonomy. Errors it
// does not recognise are returned unchanged.
func classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// a cancelled call is not a connectivity problem and must not be retried
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429:
			return &RateLimitError{Err: err}
		case 401, 403:
			return &AuthError{Err: err}
		}
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &TransportError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransportError{Err: err}
	}

	return err
}

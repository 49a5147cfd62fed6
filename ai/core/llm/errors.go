package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sashabaranov/go-openai"
)

// ErrorKind classifies gateway failures for retry decisions and caller handling.
type ErrorKind int

const (
	// ErrorKindTimeout means the request exceeded its deadline.
	ErrorKindTimeout ErrorKind = iota

	// ErrorKindConnection means the endpoint could not be reached.
	ErrorKindConnection

	// ErrorKindHTTPStatus means the endpoint answered with a non-2xx status.
	ErrorKindHTTPStatus

	// ErrorKindMalformedResponse means the response body did not expose
	// choices[0].message.content.
	ErrorKindMalformedResponse
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindConnection:
		return "connection"
	case ErrorKindHTTPStatus:
		return "http_status"
	case ErrorKindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error is a typed gateway failure.
type Error struct {
	Err    error
	Kind   ErrorKind
	Status int // HTTP status for ErrorKindHTTPStatus, 0 otherwise
}

func (e *Error) Error() string {
	if e.Kind == ErrorKindHTTPStatus {
		return fmt.Sprintf("llm gateway: %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("llm gateway: %s", e.Kind)
	}
	return fmt.Sprintf("llm gateway: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure class is safe to retry.
// Only rate limiting (429) and server-side failures (5xx) qualify.
func (e *Error) Retryable() bool {
	return e.Kind == ErrorKindHTTPStatus && (e.Status == 429 || e.Status >= 500)
}

// classify maps a transport error onto the gateway error taxonomy.
func classify(err error) *Error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: ErrorKindHTTPStatus, Status: apiErr.HTTPStatusCode, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: ErrorKindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: ErrorKindTimeout, Err: err}
	}

	return &Error{Kind: ErrorKindConnection, Err: err}
}

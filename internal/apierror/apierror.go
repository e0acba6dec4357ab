// Package apierror defines the closed set of failures a call to the normalization
// service can produce, and the classifier that maps HTTP outcomes onto it.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Kind discriminates the failure taxonomy.
type Kind int

const (
	// KindHTTP is any non-success status without a more specific kind.
	KindHTTP Kind = iota
	// KindNetwork means the request could not be sent or the response not read.
	KindNetwork
	// KindTimeout means the per-request deadline fired first.
	KindTimeout
	// KindRateLimit is a 429 response.
	KindRateLimit
	// KindNotFound is a 404 response.
	KindNotFound
	// KindValidation is a 422 response or a request rejected before dispatch.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindRateLimit:
		return "rate_limit"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "http"
	}
}

// Error is the typed failure returned by every client operation.
type Error struct {
	Kind    Kind
	Message string
	// StatusCode is 0 for failures that never produced a response.
	StatusCode int
	// RetryAfter is set only for KindRateLimit when the service sent a usable hint.
	RetryAfter *int
	// Timeout is the configured deadline, set only for KindTimeout.
	Timeout time.Duration
	Cause   error
	// Body is the raw JSON error body, if the response carried one.
	Body json.RawMessage
}

func (e *Error) Error() string {
	if e.Kind == KindRateLimit && e.RetryAfter != nil {
		return fmt.Sprintf("%s (retry after %d seconds)", e.Message, *e.RetryAfter)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Network wraps a low-level transport failure.
func Network(message string, cause error) *Error {
	if message == "" {
		message = "network request failed"
	}
	return &Error{Kind: KindNetwork, Message: message, Cause: cause}
}

// Timeout reports a request that exceeded its deadline.
func Timeout(timeout time.Duration, cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("Request timed out after %dms", timeout.Milliseconds()),
		Timeout: timeout,
		Cause:   cause,
	}
}

// Validation reports an invalid request, typically rejected before dispatch.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	return 0, false
}

// Is reports whether err carries a typed error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return Is(err, KindNotFound)
}

// IsRateLimit reports whether err is a rate-limit failure.
func IsRateLimit(err error) bool {
	return Is(err, KindRateLimit)
}

// IsTimeout reports whether err is a deadline failure.
func IsTimeout(err error) bool {
	return Is(err, KindTimeout)
}

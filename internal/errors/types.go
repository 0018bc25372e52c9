// Package errors defines the error taxonomy surfaced by the SDK and the
// recoverability classification consumed by the refetch queue.
package errors

import "fmt"

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors should be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// NetworkError wraps a transport-level failure (unreachable host,
// timeout, connection reset) for the named operation.
type NetworkError struct {
	Op  string // operation being attempted, e.g. "list expenses"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError reports rejected credentials on the auth endpoint.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

// ValidationError reports remote-side field rejection, e.g. a duplicate
// email or a weak password on account creation. Fields maps each
// rejected field name to the backend's message for it.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s %v", e.Message, e.Fields)
}

// RemoteError is any other non-2xx response from the record store.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: remote error: status %d: %s", e.Op, e.Status, e.Message)
}

// Category reports the recoverability of err. Network failures and 5xx
// are recoverable; credential and validation rejections fail fast.
func Category(err error) ErrorCategory {
	switch e := err.(type) {
	case *NetworkError:
		return Recoverable
	case *RemoteError:
		return categoryForStatus(e.Status)
	case *AuthError, *ValidationError:
		return Irrecoverable
	default:
		// Unknown errors: be conservative and retry.
		return Recoverable
	}
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	return Category(err) == Irrecoverable
}

func categoryForStatus(status int) ErrorCategory {
	switch {
	case status >= 400 && status < 500:
		switch status {
		case 408: // Request Timeout - can retry
			return Recoverable
		case 429: // Too Many Requests - should retry with backoff
			return Recoverable
		default:
			return Irrecoverable
		}
	case status >= 500 && status < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

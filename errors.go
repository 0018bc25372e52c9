package fintrack

import (
	goerrors "errors"

	interrors "github.com/fintrackapp/fintrack-go/internal/errors"
	"github.com/fintrackapp/fintrack-go/internal/shardqueue"
)

// ErrNotAuthenticated is returned by mutators invoked without a valid
// session. Routes are guarded, so hitting this indicates a caller bug
// rather than an expected state.
var ErrNotAuthenticated = goerrors.New("not authenticated")

// ErrBackPressure is returned when the internal refetch queue is full.
var ErrBackPressure = shardqueue.ErrQueueFull

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return goerrors.Is(err, ErrBackPressure) }

// Error taxonomy re-exports so callers compare against a single package.
type (
	// NetworkError is a transport-level failure (unreachable host, timeout).
	NetworkError = interrors.NetworkError
	// AuthError reports rejected credentials.
	AuthError = interrors.AuthError
	// ValidationError reports remote-side field rejection.
	ValidationError = interrors.ValidationError
	// RemoteError is any other non-2xx response.
	RemoteError = interrors.RemoteError
)

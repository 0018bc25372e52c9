package fintrack

import (
	"context"
	"sync"

	"github.com/fintrackapp/fintrack-go/session"
)

// Well-known routes the guard redirects between.
const (
	RouteHome  = "/"
	RouteLogin = "/auth/login"
)

// GuardState is the route guard's view of the session.
type GuardState int

const (
	// Unauthenticated routes render the auth group only.
	Unauthenticated GuardState = iota
	// Authenticated routes render the app's tab group.
	Authenticated
)

// String returns the state name for logging.
func (s GuardState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// RouteGuard keeps unauthenticated navigation out of the app routes and
// authenticated navigation out of the auth routes. Evaluate is called
// on every navigation segment change; Run re-evaluates whenever the
// session store changes, so an expired or cleared session redirects
// without waiting for the next navigation.
type RouteGuard struct {
	mu       sync.Mutex
	state    GuardState
	client   *Client
	sessions *session.Store
}

// NewRouteGuard seeds the guard's state from the client's current token
// validity.
func NewRouteGuard(c *Client, sessions *session.Store) *RouteGuard {
	g := &RouteGuard{client: c, sessions: sessions}
	if c.IsSessionValid() {
		g.state = Authenticated
	}
	return g
}

// State returns the guard's current state.
func (g *RouteGuard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Evaluate checks the route identified by its segments (e.g. "auth",
// "login") against the current session and returns the route to
// redirect to, if any. Token validity is re-checked on every call, so
// an expired token is detected while navigating, not just at startup.
func (g *RouteGuard) Evaluate(segments ...string) (redirect string, redirected bool) {
	valid := g.client.IsSessionValid()

	g.mu.Lock()
	if valid {
		g.state = Authenticated
	} else {
		g.state = Unauthenticated
	}
	g.mu.Unlock()

	if valid {
		// Mirror the client's identity into the session store so app
		// code observing the store sees the rehydrated session too.
		if _, ok := g.sessions.Get(); !ok {
			if s, ok := g.client.CurrentSession(); ok {
				g.sessions.Set(s)
			}
		}
	} else if _, ok := g.sessions.Get(); ok {
		// Mirror the other way too: a logout or expired token must not
		// leave store observers holding a dead session. Clearing only
		// when one is present keeps the watch loop from re-triggering
		// itself.
		g.sessions.Clear()
	}

	inAuthGroup := len(segments) > 0 && segments[0] == "auth"

	switch {
	case !valid && !inAuthGroup:
		return RouteLogin, true
	case valid && inAuthGroup:
		return RouteHome, true
	default:
		return "", false
	}
}

// Run re-evaluates the guard on every session-store change until ctx is
// done. current supplies the active route's segments; navigate performs
// the redirect.
func (g *RouteGuard) Run(ctx context.Context, current func() []string, navigate func(string)) {
	watch := g.sessions.Watch()
	for {
		select {
		case <-ctx.Done():
			return
		case <-watch:
			if target, ok := g.Evaluate(current()...); ok {
				navigate(target)
			}
		}
	}
}

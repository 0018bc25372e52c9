package fintrack

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fintrackapp/fintrack-go/internal/api"
	"github.com/fintrackapp/fintrack-go/internal/types"
	"github.com/fintrackapp/fintrack-go/tokenstore"
)

// authState is the client's in-memory token and session snapshot. The
// configured token store is a write-through mirror: every change here
// is pushed to it, and a persistence failure is logged and swallowed
// because the in-memory state stays authoritative for this process.
type authState struct {
	mu      sync.RWMutex
	token   string
	session types.Session
	present bool

	store tokenstore.Store
	log   zerolog.Logger
}

func newAuthState() *authState {
	return &authState{log: zerolog.Nop()}
}

// set installs a new token/session pair and writes it through.
func (a *authState) set(token string, s types.Session) {
	a.mu.Lock()
	a.token = token
	a.session = s
	a.present = true
	a.mu.Unlock()
	a.persist()
}

// clear drops the token/session pair and clears the persisted copy.
func (a *authState) clear() {
	a.mu.Lock()
	a.token = ""
	a.session = types.Session{}
	a.present = false
	a.mu.Unlock()
	if a.store == nil {
		return
	}
	if err := a.store.Clear(); err != nil {
		a.log.Warn().Err(err).Msg("clearing persisted auth token failed")
	}
}

// restore installs state loaded from the token store without writing it
// back.
func (a *authState) restore(token string, s types.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.session = s
	a.present = true
}

func (a *authState) persist() {
	if a.store == nil {
		return
	}
	a.mu.RLock()
	p := tokenstore.Payload{Token: a.token}
	if a.present {
		if rec, err := json.Marshal(a.session); err == nil {
			p.Record = rec
		}
	}
	a.mu.RUnlock()
	if err := a.store.Save(&p); err != nil {
		// Non-fatal: losing the persisted token only forces
		// re-authentication on the next launch.
		a.log.Warn().Err(err).Msg("persisting auth token failed")
	}
}

func (a *authState) currentToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *authState) currentSession() (types.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session, a.present
}

// rehydrate loads the persisted token once at startup. An expired or
// unreadable token is discarded; the user simply authenticates again.
func (c *Client) rehydrate() {
	if c.auth.store == nil {
		return
	}
	p, err := c.auth.store.Load()
	if err != nil {
		c.log.Warn().Err(err).Msg("loading persisted auth token failed")
		return
	}
	if p == nil || !types.TokenValid(p.Token, time.Now()) {
		return
	}
	var s types.Session
	if len(p.Record) > 0 {
		if err := json.Unmarshal(p.Record, &s); err != nil {
			c.log.Warn().Err(err).Msg("decoding persisted session failed")
		}
	}
	if s.ID == "" {
		// Fall back to the token's subject so CurrentIdentity works
		// even when the session snapshot was lost.
		if claims, err := types.ParseTokenClaims(p.Token); err == nil {
			s.ID = claims.ID
		}
	}
	c.auth.restore(p.Token, s)
}

// Authenticate exchanges credentials for a session. On success the new
// token is installed and written through to the token store.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	ar, err := api.AuthWithPassword(ctx, c.http, c.baseURL, types.AuthWithPasswordRequest{
		Identity: email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	c.auth.set(ar.Token, ar.Record)
	s := ar.Record
	return &s, nil
}

// CreateAccount registers a new user record and authenticates as it.
// The store only issues tokens from the auth endpoint, so signup is a
// create followed by an authenticate, as the mobile app always did.
func (c *Client) CreateAccount(ctx context.Context, email, password, username string) (*Session, error) {
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	if _, err := api.CreateUser(ctx, c.http, c.baseURL, types.CreateAccountRequest{
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		Username:        username,
	}); err != nil {
		return nil, err
	}
	return c.Authenticate(ctx, email, password)
}

// Logout drops the current session and clears the persisted token.
func (c *Client) Logout() {
	c.auth.clear()
}

// IsSessionValid reports whether a non-expired token is loaded.
func (c *Client) IsSessionValid() bool {
	return types.TokenValid(c.auth.currentToken(), time.Now())
}

// CurrentIdentity returns the signed-in user's identifier, or "" when
// no valid session is loaded.
func (c *Client) CurrentIdentity() string {
	if !c.IsSessionValid() {
		return ""
	}
	s, ok := c.auth.currentSession()
	if !ok {
		return ""
	}
	return s.ID
}

// CurrentSession returns the signed-in session snapshot, if any.
func (c *Client) CurrentSession() (Session, bool) {
	if !c.IsSessionValid() {
		return Session{}, false
	}
	return c.auth.currentSession()
}

// wrapTransportWithAuth wraps the HTTP client's transport so every
// request carries the current token and a correlation ID.
func (c *Client) wrapTransportWithAuth() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &authTransport{base: baseTransport, auth: c.auth}
}

// authTransport wraps an http.RoundTripper to inject the Authorization
// header with the current token on every request.
type authTransport struct {
	base http.RoundTripper
	auth *authState
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	if tok := t.auth.currentToken(); tok != "" {
		cloned.Header.Set("Authorization", tok)
	}
	cloned.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(cloned)
}

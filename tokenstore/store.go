// Package tokenstore persists the serialized auth token between
// process runs. It is a write-through mirror of the client's in-memory
// token: the client calls Save whenever its token changes and Load once
// at startup. Losing the persisted copy only forces re-authentication
// on the next launch, so callers treat Save failures as non-fatal.
package tokenstore

import "encoding/json"

// Payload is the persisted {token, record} pair. Record is the session
// snapshot captured at authentication time, kept opaque here.
type Payload struct {
	Token  string          `json:"token"`
	Record json.RawMessage `json:"record,omitempty"`
}

// Store is durable single-key storage for the auth payload.
type Store interface {
	// Load returns the persisted payload, or nil when none is stored.
	Load() (*Payload, error)
	// Save replaces the persisted payload.
	Save(p *Payload) error
	// Clear removes the persisted payload.
	Clear() error
}

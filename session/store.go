// Package session holds the signed-in identity for the current
// process. The store is a plain in-memory value with change
// notification; it is rehydrated from the persisted auth token at
// startup and owns no persistence of its own.
package session

import (
	"sync"

	"github.com/fintrackapp/fintrack-go/internal/types"
)

// Session is the authenticated identity, or absent.
type Session = types.Session

// Store is a concurrency-safe holder for the current session. Pass the
// handle explicitly to whoever needs it; there is no package-level
// singleton.
type Store struct {
	mu      sync.RWMutex
	current Session
	present bool
	watch   []chan struct{}
}

// NewStore returns an empty session store.
func NewStore() *Store { return &Store{} }

// Get returns the current session, if one is set.
func (s *Store) Get() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.present
}

// Set replaces the current session and notifies watchers.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	s.current = sess
	s.present = true
	watch := append([]chan struct{}(nil), s.watch...)
	s.mu.Unlock()
	notify(watch)
}

// Clear removes the current session and notifies watchers.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = Session{}
	s.present = false
	watch := append([]chan struct{}(nil), s.watch...)
	s.mu.Unlock()
	notify(watch)
}

// Watch returns a channel signalled on every Set or Clear. The buffer
// is one; coalesced signals are fine because watchers re-read state.
func (s *Store) Watch() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watch = append(s.watch, ch)
	s.mu.Unlock()
	return ch
}

func notify(watch []chan struct{}) {
	for _, ch := range watch {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

package tokenstore

import "sync"

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu sync.Mutex
	p  *Payload
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

// Load implements Store.
func (s *MemStore) Load() (*Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p == nil {
		return nil, nil
	}
	cp := *s.p
	return &cp, nil
}

// Save implements Store.
func (s *MemStore) Save(p *Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.p = &cp
	return nil
}

// Clear implements Store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = nil
	return nil
}

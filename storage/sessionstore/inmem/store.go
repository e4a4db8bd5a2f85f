package inmemstore

import (
	"sync"

	"github.com/darasa/console/core/session"
)

// Store keeps the session in memory. Nothing survives a restart; it backs
// tests and ephemeral runs.
type Store struct {
	mu  sync.RWMutex
	rec session.Record
	set bool
}

var _ session.Store = (*Store)(nil)

func Open() *Store {
	return &Store{}
}

func (s *Store) Load() (session.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, s.set, nil
}

func (s *Store) Save(rec session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.set = true
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = session.Record{}
	s.set = false
	return nil
}

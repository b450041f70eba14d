// Package kvstore provides the key-value string stores the feature
// store persists its snapshot through. The Store interface is the
// whole persistence contract; the feature store never sees anything
// richer than string-in, string-out.
package kvstore

import "sync"

// Store is a generic key-value string store. GetString reports
// ok=false for absent keys; Remove of an absent key is a no-op.
type Store interface {
	GetString(key string) (value string, ok bool, err error)
	SetString(key, value string) error
	Remove(key string) error
}

// Memory is a map-backed Store, safe for concurrent use. The default
// for tests and for embedders that want no persistence across
// restarts.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) GetString(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

package store

import (
	"sync"
)

// ProjectsKey is the single key under which the whole project
// collection (with nested tasks) is persisted.
const ProjectsKey = "projects"

// Gateway is the key-value persistence contract consumed by the
// repositories. Save replaces the prior value for a key as a whole;
// there is no partial or incremental persistence.
type Gateway interface {
	// Load returns the value last saved under key, or ok=false if the
	// key was never saved or has been removed.
	Load(key string) (value []byte, ok bool, err error)

	// Save replaces the value stored under key.
	Save(key string, value []byte) error

	// Remove clears the value stored under key; a subsequent Load
	// reports absent.
	Remove(key string) error
}

// Memory is an in-process Gateway used for tests and ephemeral runs
type Memory struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemory creates an empty in-memory gateway
func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

// Load implements Gateway
func (s *Memory) Load(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

// Save implements Gateway
func (s *Memory) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.m[key] = cp
	return nil
}

// Remove implements Gateway
func (s *Memory) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

package memory

import (
	"fmt"
	"sync"

	"sayitloud/infrastructure/persistence"
	pkgerrors "sayitloud/pkg/errors"
)

// MemoryStorage provides an in-memory implementation of Storage for tests
// and ephemeral sessions.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string][]byte),
	}
}

var _ persistence.Storage = (*MemoryStorage)(nil)

// Get returns the stored value for key
func (s *MemoryStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("storage key %q", key))
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores the value under key
func (s *MemoryStorage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Delete removes the value under key
func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

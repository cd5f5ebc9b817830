package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"sayitloud/infrastructure/persistence"
	pkgerrors "sayitloud/pkg/errors"
)

// keys map to flat file names; restrict them so a bad key can never escape
// the state directory.
var validKey = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// FileStorage persists each key as one file under a state directory.
type FileStorage struct {
	mu  sync.Mutex
	dir string
}

// NewFileStorage creates the state directory if needed and returns a storage
// backed by it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

var _ persistence.Storage = (*FileStorage)(nil)

// Get returns the stored value for key.
func (s *FileStorage) Get(key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("storage key %q", key))
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Set stores the value under key. Writes go through a temp file and rename
// so a crash mid-write never leaves a torn value.
func (s *FileStorage) Set(key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("committing %s: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Missing keys are a no-op.
func (s *FileStorage) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", pkgerrors.NewValidationError(fmt.Sprintf("invalid storage key %q", key))
	}
	return filepath.Join(s.dir, key), nil
}

// Package localstore is the device-local persistence collaborator: a flat
// key-value store of JSON snapshots, one file per collection. It is read once
// at startup and written after every mutation when no session is present.
package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Prefix namespaces every snapshot key on disk.
const Prefix = "lifeos_"

// Store persists collection snapshots under a single directory.
type Store struct {
	dir string
}

// New creates the snapshot directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %v", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, Prefix+key+".json")
}

// Get returns the stored snapshot for a key. The second result is false when
// no snapshot exists.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes a snapshot, replacing any previous one for the same key.
func (s *Store) Set(key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %q: %v", key, err)
	}
	return nil
}

// Delete removes a stored snapshot. A missing snapshot is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot %q: %v", key, err)
	}
	return nil
}

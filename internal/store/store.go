// Package store persists serialized state as one JSON file per key,
// last write wins. The keys are the same fixed identifiers the browser
// variant uses in localStorage, so state moved between variants stays
// readable.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	KeyCatalog = "pedidomaslog_catalog"
	KeyRows    = "pedidomaslog_rows"
	KeyCounter = "pedidomaslog_rowIdCounter"
)

// ErrNotFound means the key has never been saved.
var ErrNotFound = errors.New("store: key not found")

type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save serializes v and replaces whatever the key held before.
func (s *Store) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

// Load deserializes the key into dest.
func (s *Store) Load(key string, dest any) error {
	s.mu.Lock()
	b, err := os.ReadFile(s.path(key))
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(b, dest)
}

// Delete forgets the key; deleting an absent key is fine.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

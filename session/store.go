// Package session holds the client's belief about which user, if any, is
// currently authenticated. The durable store is the single source of truth
// for session survival across restarts: it is read once at boot and written
// on every auth transition. Components receive a Store explicitly instead of
// reaching into shared state.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StoredUser is the denormalized user projection persisted between runs.
// Absence of a stored projection means logged-out.
type StoredUser struct {
	ID        string    `json:"_id,omitempty"`
	Username  string    `json:"username"`
	UserImage string    `json:"userImage,omitempty"`
	SavedAt   time.Time `json:"savedAt"`
}

// Store is the durable key-value slot for the session projection.
//
// Load returns (nil, nil) when no projection is stored. Save overwrites any
// existing projection (last writer wins). Clear removes the projection and is
// a no-op when nothing is stored.
type Store interface {
	Load() (*StoredUser, error)
	Save(*StoredUser) error
	Clear() error
}

// ------------------------------
// File-backed store
// ------------------------------

// FileStore persists the projection as a single JSON file, the local
// equivalent of the browser's localStorage slot.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore rooted at path. The parent directory is
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored projection. A missing file means logged-out.
func (s *FileStore) Load() (*StoredUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", s.path, err)
	}
	var u StoredUser
	if err := json.Unmarshal(data, &u); err != nil {
		// A corrupt session file is treated as logged-out rather than
		// wedging the application at boot.
		return nil, nil
	}
	return &u, nil
}

// Save writes the projection, replacing any previous one.
func (s *FileStore) Save(u *StoredUser) error {
	if u == nil {
		return fmt.Errorf("session: nil user projection")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the stored projection.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: clear %s: %w", s.path, err)
	}
	return nil
}

// ------------------------------
// In-memory store
// ------------------------------

// MemStore keeps the projection in memory; used in tests and short-lived
// embedded scenarios.
type MemStore struct {
	mu   sync.Mutex
	user *StoredUser
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (*StoredUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	cp := *s.user
	return &cp, nil
}

func (s *MemStore) Save(u *StoredUser) error {
	if u == nil {
		return fmt.Errorf("session: nil user projection")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.user = &cp
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

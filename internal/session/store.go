// Package session keeps the stub user record on local disk, mirroring the
// browser's local-storage behavior: presence means authenticated, absence
// means not. No credential validation happens anywhere.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"storyboard/internal/domain"
)

// Store persists a single user record as a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store writing to path, ensuring the parent directory
// exists.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("session: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("session: ensure directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Save writes the user record, replacing any previous one.
func (s *Store) Save(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: marshal user: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write user: %w", err)
	}
	return nil
}

// Load returns the stored user record, or domain.ErrNotFound when no session
// exists.
func (s *Store) Load() (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("session: read user: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, fmt.Errorf("session: decode user: %w", err)
	}
	return user, nil
}

// Clear removes the session record. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear user: %w", err)
	}
	return nil
}

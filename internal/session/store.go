// Package session holds the authentication token used for API requests.
package session

import (
	"errors"
	"strings"
	"sync"

	"blogdeck/internal/database"
)

// ErrEmptyToken is returned when asked to store a blank token
var ErrEmptyToken = errors.New("empty session token")

// Store holds the current authentication token. Reads are per call and not
// reactive: a value changed elsewhere is only seen on the next Get.
type Store interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

// PersistentStore keeps the token in the local sqlite database so it
// survives restarts.
type PersistentStore struct {
	repo *database.StorageRepo
	key  string
}

// NewPersistentStore creates a store backed by the open database
func NewPersistentStore() *PersistentStore {
	return &PersistentStore{
		repo: database.NewStorageRepo(),
		key:  database.KeyToken,
	}
}

// Get returns the stored token, if any
func (s *PersistentStore) Get() (string, bool) {
	token, err := s.repo.Get(s.key)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Set stores a token
func (s *PersistentStore) Set(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	return s.repo.Set(s.key, token)
}

// Clear removes the stored token
func (s *PersistentStore) Clear() error {
	return s.repo.Delete(s.key)
}

// MemoryStore keeps the token in process memory only
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored token, if any
func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set stores a token
func (s *MemoryStore) Set(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear removes the stored token
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

package database

import (
	"database/sql"
	"errors"
	"time"
)

// ErrKeyNotFound is returned when a key has no stored value
var ErrKeyNotFound = errors.New("key not found")

// StorageRepo is a durable key/value store scoped to this client installation
type StorageRepo struct{}

// NewStorageRepo creates a new storage repository
func NewStorageRepo() *StorageRepo {
	return &StorageRepo{}
}

// Get retrieves a stored value
func (r *StorageRepo) Get(key string) (string, error) {
	var value string
	err := DB.QueryRow("SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	return value, err
}

// Set stores a value, replacing any previous one
func (r *StorageRepo) Set(key, value string) error {
	now := time.Now()
	_, err := DB.Exec(`
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = ?
	`, key, value, now, value, now)
	return err
}

// Delete removes a key. Deleting a missing key is not an error.
func (r *StorageRepo) Delete(key string) error {
	_, err := DB.Exec("DELETE FROM local_storage WHERE key = ?", key)
	return err
}

// Storage keys
const (
	KeyToken = "token"
)

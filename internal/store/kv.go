// Package store is the single source of truth for catalog items and
// provider configurations on one device. State lives in memory and is
// flushed to a local key-value table after every mutation.
package store

import (
	"database/sql"
	"fmt"

	"github.com/cinecraze/catman/internal/migrations"
)

// KV is a string key-value table on SQLite, holding the serialized catalog
// blobs and user settings.
type KV struct {
	db *sql.DB
}

// NewKV prepares the kv table and returns a handle.
func NewKV(db *sql.DB) (*KV, error) {
	if _, err := db.Exec(migrations.StoreSQL); err != nil {
		return nil, fmt.Errorf("init kv schema: %w", err)
	}
	return &KV{db: db}, nil
}

// Get returns the value for key, or ("", false) when absent.
func (k *KV) Get(key string) (string, bool, error) {
	var value string
	err := k.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores or replaces the value for key.
func (k *KV) Put(key, value string) error {
	_, err := k.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Idempotent.
func (k *KV) Delete(key string) error {
	if _, err := k.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

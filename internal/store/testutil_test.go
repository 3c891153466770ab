package store

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	kv := setupTestKV(t)
	return Open(kv, discardLogger())
}

func setupTestKV(t *testing.T) *KV {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kv, err := NewKV(db)
	if err != nil {
		t.Fatalf("init kv: %v", err)
	}
	return kv
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

package testutil

import (
	"testing"

	"github.com/tbui/taskbox/internal/store"
)

// NewTestKV creates an in-memory SQLiteKV with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestKV(t *testing.T) *store.SQLiteKV {
	t.Helper()

	kv, err := store.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return kv
}

// NewTestAdapter creates an Adapter backed by an in-memory SQLiteKV.
func NewTestAdapter(t *testing.T) *store.Adapter {
	t.Helper()
	return store.NewAdapter(NewTestKV(t))
}

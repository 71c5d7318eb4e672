package sqlite

import (
	"testing"
)

// newTestDB opens an in-memory database with the full schema. Each test gets
// its own isolated database that disappears when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/taskboard/internal/database"
)

// NewTestRepo opens a migrated in-memory database. It is closed when the test ends.
func NewTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewRepository(db)
}

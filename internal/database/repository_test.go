package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/models"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

func sampleSnapshot() models.Snapshot {
	created := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	due := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	return models.Snapshot{
		Projects: []models.Project{
			{ID: "p1", Name: "Website", Description: "Marketing site", CreatedAt: created},
			{ID: "p2", Name: "Mobile", CreatedAt: created},
		},
		Users: []models.User{
			{ID: "u1", Name: "Ada Lovelace", Avatar: "AL"},
		},
		Tasks: []models.Task{
			{
				ID:          "t2",
				Title:       "Landing page",
				Description: "# Hero\nnew copy",
				Status:      models.StatusReview,
				Priority:    models.PriorityHigh,
				AssigneeID:  "u1",
				ProjectID:   "p1",
				DueDate:     &due,
				Subtasks: []models.Subtask{
					{ID: "s2", Title: "Copy", Completed: true},
					{ID: "s1", Title: "Images"},
				},
				Attachments: []models.Attachment{{ID: "a1", Name: "mock.png", URL: "https://example.com/mock.png"}},
				Tags:        []string{"design", "web"},
				CreatedAt:   created,
				UpdatedAt:   created.Add(time.Hour),
			},
			{
				ID:        "t1",
				Title:     "Release",
				Status:    models.StatusTodo,
				Priority:  models.PriorityLow,
				CreatedAt: created,
				UpdatedAt: created,
			},
		},
	}
}

func TestInitDB_MigrationsApplied(t *testing.T) {
	repo := setupTestRepo(t)

	version, err := schemaVersion(context.Background(), repo.DB())
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), version)
}

func TestInitDB_ReopenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "board.db")

	db, err := InitDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewRepository(db).Save(ctx, sampleSnapshot()))
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	snap, err := NewRepository(db).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Tasks, 2)
}

func TestRepository_RoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	want := sampleSnapshot()

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Projects, got.Projects)
	assert.Equal(t, want.Users, got.Users)
	require.Len(t, got.Tasks, 2)

	// task order and subtask order are preserved
	assert.Equal(t, "t2", got.Tasks[0].ID)
	assert.Equal(t, "t1", got.Tasks[1].ID)
	assert.Equal(t, want.Tasks[0], got.Tasks[0])
	assert.Equal(t, want.Tasks[1], got.Tasks[1])
}

func TestRepository_SaveReplaces(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))
	require.NoError(t, repo.Save(ctx, models.Snapshot{
		Projects: []models.Project{{ID: "p9", Name: "Only", CreatedAt: time.Now().UTC()}},
	}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
	assert.Empty(t, got.Users)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "p9", got.Projects[0].ID)

	var orphans int
	require.NoError(t, repo.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM subtasks").Scan(&orphans))
	assert.Zero(t, orphans, "subtasks should cascade with their task")
}

func TestRepository_SaveIsAtomic(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	bad := sampleSnapshot()
	bad.Tasks[1].Status = "archived" // rejected by the CHECK constraint

	require.Error(t, repo.Save(ctx, bad))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 2, "failed save must leave the previous snapshot intact")
}

func TestRepository_LoadEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Tasks)
	assert.Empty(t, got.Tasks)
}

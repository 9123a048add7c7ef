package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Repository reads and writes whole workspace snapshots. It implements
// workspace.Persister.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps an initialised database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle, mostly for tests.
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Load reads the full workspace.
func (r *Repository) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Projects, err = selectProjects(ctx, r.db); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load projects: %w", err)
	}
	if snap.Users, err = selectUsers(ctx, r.db); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load users: %w", err)
	}
	if snap.Tasks, err = selectTasks(ctx, r.db); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	return snap, nil
}

// Save replaces the stored workspace with snap in a single transaction.
func (r *Repository) Save(ctx context.Context, snap models.Snapshot) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		// tasks first: subtasks, tags and attachments cascade, and the
		// project foreign key is RESTRICT
		for _, table := range []string{"tasks", "users", "projects"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, p := range snap.Projects {
			if err := insertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, u := range snap.Users {
			if err := insertUser(ctx, tx, u); err != nil {
				return err
			}
		}
		for i, t := range snap.Tasks {
			if err := insertTask(ctx, tx, t, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

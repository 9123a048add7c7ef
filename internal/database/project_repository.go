package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

func insertProject(ctx context.Context, q querier, p models.Project) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO projects (id, name, description, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.Description, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
	}
	return nil
}

func selectProjects(ctx context.Context, q querier) ([]models.Project, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, description, created_at FROM projects ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &createdAt); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

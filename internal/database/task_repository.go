package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

func insertTask(ctx context.Context, q querier, t models.Task, position int) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, assignee_id, project_id,
		                   due_date, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		nullString(t.AssigneeID), nullString(t.ProjectID), nullTime(t.DueDate),
		position, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
	}

	for i, st := range t.Subtasks {
		_, err := q.ExecContext(ctx,
			"INSERT INTO subtasks (task_id, id, title, completed, position) VALUES (?, ?, ?, ?, ?)",
			t.ID, st.ID, st.Title, st.Completed, i)
		if err != nil {
			return fmt.Errorf("failed to insert subtask %s of task %s: %w", st.ID, t.ID, err)
		}
	}

	for _, tag := range t.Tags {
		if _, err := q.ExecContext(ctx, "INSERT INTO task_tags (task_id, tag) VALUES (?, ?)", t.ID, tag); err != nil {
			return fmt.Errorf("failed to insert tag %q of task %s: %w", tag, t.ID, err)
		}
	}

	for i, a := range t.Attachments {
		_, err := q.ExecContext(ctx,
			"INSERT INTO attachments (task_id, id, name, url, position) VALUES (?, ?, ?, ?, ?)",
			t.ID, a.ID, a.Name, a.URL, i)
		if err != nil {
			return fmt.Errorf("failed to insert attachment %s of task %s: %w", a.ID, t.ID, err)
		}
	}

	return nil
}

// selectTasks reads tasks and then their children in separate passes. Each
// result set is drained before the next query starts because the pool holds a
// single connection.
func selectTasks(ctx context.Context, q querier) ([]models.Task, error) {
	tasks, index, err := selectTaskRows(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	if err := attachSubtasks(ctx, q, tasks, index); err != nil {
		return nil, err
	}
	if err := attachTags(ctx, q, tasks, index); err != nil {
		return nil, err
	}
	if err := attachAttachments(ctx, q, tasks, index); err != nil {
		return nil, err
	}
	return tasks, nil
}

func selectTaskRows(ctx context.Context, q querier) ([]models.Task, map[string]int, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, title, description, status, priority, assignee_id, project_id,
		       due_date, created_at, updated_at
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			t                    models.Task
			status, priority     string
			assignee, project    sql.NullString
			due                  sql.NullString
			createdAt, updatedAt string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &priority,
			&assignee, &project, &due, &createdAt, &updatedAt); err != nil {
			return nil, nil, err
		}

		t.Status = models.Status(status)
		t.Priority = models.Priority(priority)
		t.AssigneeID = assignee.String
		t.ProjectID = project.String
		if due.Valid {
			d, err := parseTime(due.String)
			if err != nil {
				return nil, nil, err
			}
			t.DueDate = &d
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, nil, err
		}
		if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, nil, err
		}

		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	return tasks, index, rows.Err()
}

func attachSubtasks(ctx context.Context, q querier, tasks []models.Task, index map[string]int) error {
	rows, err := q.QueryContext(ctx, "SELECT task_id, id, title, completed FROM subtasks ORDER BY task_id, position")
	if err != nil {
		return fmt.Errorf("failed to query subtasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var st models.Subtask
		if err := rows.Scan(&taskID, &st.ID, &st.Title, &st.Completed); err != nil {
			return err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Subtasks = append(tasks[i].Subtasks, st)
		}
	}
	return rows.Err()
}

func attachTags(ctx context.Context, q querier, tasks []models.Task, index map[string]int) error {
	rows, err := q.QueryContext(ctx, "SELECT task_id, tag FROM task_tags ORDER BY task_id, tag")
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, tag string
		if err := rows.Scan(&taskID, &tag); err != nil {
			return err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Tags = append(tasks[i].Tags, tag)
		}
	}
	return rows.Err()
}

func attachAttachments(ctx context.Context, q querier, tasks []models.Task, index map[string]int) error {
	rows, err := q.QueryContext(ctx, "SELECT task_id, id, name, url FROM attachments ORDER BY task_id, position")
	if err != nil {
		return fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var a models.Attachment
		if err := rows.Scan(&taskID, &a.ID, &a.Name, &a.URL); err != nil {
			return err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Attachments = append(tasks[i].Attachments, a)
		}
	}
	return rows.Err()
}

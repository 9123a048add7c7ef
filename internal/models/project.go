package models

import "time"

// Project groups tasks. Tasks reference their project by id; the project does
// not own a task list.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectStats counts a project's tasks per status.
type ProjectStats struct {
	ProjectID string         `json:"project_id"`
	Total     int            `json:"total"`
	ByStatus  map[Status]int `json:"by_status"`
}

package state

import (
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// AppState holds the board as last loaded from the workspace.
type AppState struct {
	columns []models.Column
	names   board.Names
	users   []models.User
}

// NewAppState creates an AppState with one empty column per status.
func NewAppState() *AppState {
	return &AppState{columns: board.Columns(nil)}
}

// Columns returns the board columns in status order.
func (s *AppState) Columns() []models.Column {
	return s.columns
}

// SetColumns replaces the board columns.
func (s *AppState) SetColumns(cols []models.Column) {
	s.columns = cols
}

// Counts returns the number of tasks per column.
func (s *AppState) Counts() []int {
	counts := make([]int, len(s.columns))
	for i, col := range s.columns {
		counts[i] = len(col.Tasks)
	}
	return counts
}

// Task returns the task at (col, idx), if there is one.
func (s *AppState) Task(col, idx int) (models.Task, bool) {
	if col < 0 || col >= len(s.columns) {
		return models.Task{}, false
	}
	tasks := s.columns[col].Tasks
	if idx < 0 || idx >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[idx], true
}

// Names resolves user and project ids for rendering.
func (s *AppState) Names() board.Names {
	return s.names
}

// SetUsers records the users and projects for name lookups, the assignee
// filter cycle and the task form.
func (s *AppState) SetUsers(users []models.User, projects []models.Project) {
	s.names = board.NewNames(users, projects)
	s.users = users
}

// Users returns the known users in workspace order.
func (s *AppState) Users() []models.User {
	return s.users
}

// UserIDs returns the known user ids in workspace order.
func (s *AppState) UserIDs() []string {
	ids := make([]string, len(s.users))
	for i, u := range s.users {
		ids[i] = u.ID
	}
	return ids
}

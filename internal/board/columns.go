// Package board arranges tasks into status columns and list groups, turns
// transition events into moves, and renders both views as text.
package board

import (
	"cmp"
	"slices"
	"strings"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Columns groups tasks into one column per status, in board order. Every task
// lands in exactly one column; a task with an unknown status would violate the
// model invariants and is placed in the first column rather than dropped.
func Columns(tasks []models.Task) []models.Column {
	statuses := models.Statuses()
	cols := make([]models.Column, len(statuses))
	for i, s := range statuses {
		cols[i] = models.NewColumn(s)
	}

	for _, t := range tasks {
		i := t.Status.Index()
		if i < 0 {
			i = 0
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}

	for i := range cols {
		SortTasks(cols[i].Tasks)
	}
	return cols
}

// SortTasks orders tasks by priority (high first), then due date (earliest
// first, undated last), then title, then id.
func SortTasks(tasks []models.Task) {
	slices.SortStableFunc(tasks, compareTasks)
}

func compareTasks(a, b models.Task) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return -1
	case a.DueDate == nil && b.DueDate != nil:
		return 1
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	}
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Progress returns the subtask completion of a task.
func Progress(t models.Task) models.SubtaskProgress {
	return t.Progress()
}

// Locate returns the column and row of a task in cols, or -1, -1.
func Locate(cols []models.Column, taskID string) (int, int) {
	for c, col := range cols {
		for r, t := range col.Tasks {
			if t.ID == taskID {
				return c, r
			}
		}
	}
	return -1, -1
}

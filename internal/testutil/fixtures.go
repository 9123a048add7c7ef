// Package testutil holds shared fixtures and constructors for tests.
package testutil

import (
	"fmt"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// FixedNow is the clock reading used by test stores.
var FixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// Fixture10 returns a workspace of ten tasks spread over every status,
// priority and two assignees, plus one unassigned task.
//
// Status counts: todo 3, in-progress 3, review 2, done 2.
func Fixture10() models.Snapshot {
	due := FixedNow.Add(48 * time.Hour)
	overdue := FixedNow.Add(-24 * time.Hour)

	tasks := []models.Task{
		{ID: "1", Title: "Design login form", Status: models.StatusTodo, Priority: models.PriorityHigh, AssigneeID: "u1", ProjectID: "p1", Tags: []string{"frontend", "ui"}},
		{ID: "2", Title: "Write API docs", Status: models.StatusTodo, Priority: models.PriorityLow, AssigneeID: "u2", ProjectID: "p2", Tags: []string{"docs"}},
		{ID: "3", Title: "Set up CI pipeline", Status: models.StatusTodo, Priority: models.PriorityMedium, ProjectID: "p2", Tags: []string{"infra/ci"}},
		{ID: "4", Title: "Implement auth service", Status: models.StatusInProgress, Priority: models.PriorityHigh, AssigneeID: "u2", ProjectID: "p2", Tags: []string{"backend"}, DueDate: &overdue},
		{ID: "5", Title: "Build dashboard charts", Status: models.StatusInProgress, Priority: models.PriorityMedium, AssigneeID: "u1", ProjectID: "p1", Tags: []string{"frontend"}},
		{ID: "6", Title: "Migrate user table", Status: models.StatusInProgress, Priority: models.PriorityLow, AssigneeID: "u2", ProjectID: "p2", Tags: []string{"backend", "db"}},
		{ID: "7", Title: "Review onboarding copy", Status: models.StatusReview, Priority: models.PriorityMedium, AssigneeID: "u1", ProjectID: "p1", DueDate: &due},
		{ID: "8", Title: "Audit dependencies", Status: models.StatusReview, Priority: models.PriorityHigh, AssigneeID: "u2", ProjectID: "p2", Tags: []string{"infra/security"}},
		{ID: "9", Title: "Launch announcement", Status: models.StatusDone, Priority: models.PriorityLow, AssigneeID: "u1", ProjectID: "p1"},
		{ID: "10", Title: "Fix flaky tests", Status: models.StatusDone, Priority: models.PriorityMedium, AssigneeID: "u2", ProjectID: "p2", Tags: []string{"infra/ci"}},
	}

	tasks[4].Subtasks = []models.Subtask{
		{ID: "5a", Title: "Line chart", Completed: true},
		{ID: "5b", Title: "Bar chart"},
		{ID: "5c", Title: "Legend"},
	}
	tasks[6].Subtasks = []models.Subtask{{ID: "7a", Title: "Proofread", Completed: true}}

	for i := range tasks {
		tasks[i].CreatedAt = FixedNow.Add(time.Duration(i) * time.Minute)
		tasks[i].UpdatedAt = tasks[i].CreatedAt
	}

	return models.Snapshot{
		Projects: []models.Project{
			{ID: "p1", Name: "Website", Description: "Public site", CreatedAt: FixedNow},
			{ID: "p2", Name: "Platform", Description: "Backend services", CreatedAt: FixedNow},
		},
		Users: []models.User{
			{ID: "u1", Name: "Ada Lovelace", Avatar: "AL"},
			{ID: "u2", Name: "Grace Hopper", Avatar: "GH"},
		},
		Tasks: tasks,
	}
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

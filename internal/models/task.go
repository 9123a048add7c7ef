package models

import (
	"slices"
	"strings"
	"time"
)

// Task is a single card on the board.
//
// AssigneeID and ProjectID are weak references: nothing guarantees the user or
// project still exists, and lookups by id must tolerate a miss.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	AssigneeID  string       `json:"assignee_id,omitempty"`
	ProjectID   string       `json:"project_id,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Attachment is a named link stored with a task. Content is never stored.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Clone returns a deep copy of the task. Slices and the due date are never shared
// with the receiver.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Subtasks = slices.Clone(t.Subtasks)
	c.Attachments = slices.Clone(t.Attachments)
	c.Tags = slices.Clone(t.Tags)
	return c
}

// Progress counts completed subtasks.
func (t Task) Progress() SubtaskProgress {
	p := SubtaskProgress{Total: len(t.Subtasks)}
	for _, st := range t.Subtasks {
		if st.Completed {
			p.Done++
		}
	}
	return p
}

// HasTag reports whether the task carries tag (case-insensitive).
func (t Task) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	return slices.Contains(t.Tags, tag)
}

// IsOverdue reports whether the task has a due date before now and is not done.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != StatusDone && t.DueDate.Before(now)
}

// NormalizeTags lowercases, trims, drops empties and deduplicates, returning a
// sorted set.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

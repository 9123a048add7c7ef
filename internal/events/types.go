package events

import (
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	TaskCreated    EventType = "task.created"
	TaskUpdated    EventType = "task.updated"
	TaskMoved      EventType = "task.moved"
	TaskDeleted    EventType = "task.deleted"
	SubtaskToggled EventType = "subtask.toggled"
	ProjectCreated EventType = "project.created"
	ProjectDeleted EventType = "project.deleted"
	UserCreated    EventType = "user.created"
	UserDeleted    EventType = "user.deleted"
)

// Event describes one committed change to the workspace.
type Event struct {
	Type       EventType     `json:"type"`
	TaskID     string        `json:"task_id,omitempty"`
	ProjectID  string        `json:"project_id,omitempty"` // for subscription filtering
	UserID     string        `json:"user_id,omitempty"`
	From       models.Status `json:"from,omitempty"` // set on task.moved
	To         models.Status `json:"to,omitempty"`   // set on task.moved
	Timestamp  time.Time     `json:"timestamp"`
	SequenceID int64         `json:"sequence_id"` // assigned by the bus, monotonically increasing
}

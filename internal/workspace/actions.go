package workspace

import (
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Action is a request to change the workspace. Reduce interprets it.
type Action interface {
	// Kind names the action for logging.
	Kind() string
}

// MoveTask sets a task's status. Moving onto the current status is a no-op.
type MoveTask struct {
	TaskID string
	To     models.Status
}

// TaskPatch lists the task fields to change. Nil fields are left alone.
// Status changes go through MoveTask.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *models.Priority
	AssigneeID   *string
	ProjectID    *string
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *[]string
	Attachments  *[]models.Attachment
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.AssigneeID == nil && p.ProjectID == nil && p.DueDate == nil &&
		!p.ClearDueDate && p.Tags == nil && p.Attachments == nil
}

type UpdateTask struct {
	TaskID string
	Patch  TaskPatch
}

// ToggleSubtask flips one subtask's completed flag. The parent task's status
// is not touched, even when the last open subtask is completed.
type ToggleSubtask struct {
	TaskID    string
	SubtaskID string
}

// CreateTask inserts a task. ID must be set by the caller. An empty status
// defaults to todo and an empty priority to medium.
type CreateTask struct {
	Task models.Task
}

type DeleteTask struct {
	TaskID string
}

// AddSubtask appends a subtask to the end of a task's checklist.
type AddSubtask struct {
	TaskID  string
	Subtask models.Subtask
}

type RemoveSubtask struct {
	TaskID    string
	SubtaskID string
}

type CreateProject struct {
	Project models.Project
}

// DeleteProject removes a project. It fails while any task references it.
type DeleteProject struct {
	ProjectID string
}

type CreateUser struct {
	User models.User
}

// DeleteUser removes a user and clears the assignee on their tasks.
type DeleteUser struct {
	UserID string
}

// Load replaces the whole workspace with the snapshot.
type Load struct {
	Snapshot models.Snapshot
}

func (MoveTask) Kind() string      { return "move_task" }
func (UpdateTask) Kind() string    { return "update_task" }
func (ToggleSubtask) Kind() string { return "toggle_subtask" }
func (CreateTask) Kind() string    { return "create_task" }
func (DeleteTask) Kind() string    { return "delete_task" }
func (AddSubtask) Kind() string    { return "add_subtask" }
func (RemoveSubtask) Kind() string { return "remove_subtask" }
func (CreateProject) Kind() string { return "create_project" }
func (DeleteProject) Kind() string { return "delete_project" }
func (CreateUser) Kind() string    { return "create_user" }
func (DeleteUser) Kind() string    { return "delete_user" }
func (Load) Kind() string          { return "load" }

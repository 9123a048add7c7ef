package task

import (
	"errors"

	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrEmptyPatch      = errors.New("nothing to update")

	// Lookup errors, shared with the workspace so errors.Is works across layers
	ErrTaskNotFound    = workspace.ErrTaskNotFound
	ErrSubtaskNotFound = workspace.ErrSubtaskNotFound
)

// Movement-related errors
var (
	// ErrAlreadyLastColumn indicates that the task is already in the last column
	ErrAlreadyLastColumn = errors.New("task is already in the last column")

	// ErrAlreadyFirstColumn indicates that the task is already in the first column
	ErrAlreadyFirstColumn = errors.New("task is already in the first column")

	// ErrNoOpenSubtasks indicates that every subtask is already complete
	ErrNoOpenSubtasks = errors.New("task has no incomplete subtasks")
)

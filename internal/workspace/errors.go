package workspace

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrMissingID       = errors.New("id is required")
	ErrDuplicateID     = errors.New("id already exists")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrUnknownAction   = errors.New("unknown action")
	ErrProjectHasTasks = errors.New("project still has tasks")
)

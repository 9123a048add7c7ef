package project

import (
	"errors"

	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 100 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")

	// Business logic errors
	ErrProjectNotFound = workspace.ErrProjectNotFound
	ErrProjectHasTasks = workspace.ErrProjectHasTasks
)

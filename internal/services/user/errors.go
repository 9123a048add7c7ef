package user

import (
	"errors"

	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// Domain errors for user service
var (
	ErrEmptyName     = errors.New("user name cannot be empty")
	ErrNameTooLong   = errors.New("user name cannot exceed 100 characters")
	ErrAvatarTooLong = errors.New("avatar cannot exceed 4 characters")
	ErrInvalidUserID = errors.New("invalid user ID")
	ErrUserNotFound  = workspace.ErrUserNotFound
)

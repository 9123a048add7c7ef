package models

import "errors"

var (
	// ErrInvalidStatus is returned for any status outside todo/in-progress/review/done.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned for any priority outside high/medium/low.
	ErrInvalidPriority = errors.New("invalid priority")
)

// Column navigation errors
var (
	// ErrNoNextColumn indicates that the task is already in the last column
	ErrNoNextColumn = errors.New("task is already in the last column")

	// ErrNoPrevColumn indicates that the task is already in the first column
	ErrNoPrevColumn = errors.New("task is already in the first column")
)

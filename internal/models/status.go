package models

import (
	"fmt"
	"strings"
)

// Status is the workflow state of a task. Each status is rendered as one board column.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// statusOrder is the left-to-right column order on the board.
var statusOrder = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Statuses returns every status in column order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Index returns the column position of s, or -1 for an unknown status.
func (s Status) Index() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the status of the column to the right.
func (s Status) Next() (Status, error) {
	i := s.Index()
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	if i == len(statusOrder)-1 {
		return "", ErrNoNextColumn
	}
	return statusOrder[i+1], nil
}

// Prev returns the status of the column to the left.
func (s Status) Prev() (Status, error) {
	i := s.Index()
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	if i == 0 {
		return "", ErrNoPrevColumn
	}
	return statusOrder[i-1], nil
}

// Label is the human readable column title.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

func (s Status) String() string { return string(s) }

// ParseStatus accepts the canonical value plus a few common spellings
// ("in_progress", "inprogress", "In Progress").
func ParseStatus(raw string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.NewReplacer("_", "-", " ", "-").Replace(v)
	if v == "inprogress" {
		v = string(StatusInProgress)
	}
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

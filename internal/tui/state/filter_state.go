package state

import (
	"github.com/thenoetrevino/taskboard/internal/filter"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// FilterState tracks the board filter the user has cycled to. Each criterion
// starts at "all".
type FilterState struct {
	status   string
	assignee string
}

// NewFilterState creates a FilterState that matches every task.
func NewFilterState() *FilterState {
	return &FilterState{status: filter.All, assignee: filter.All}
}

// CycleStatus advances the status criterion: all, then each status in board
// order, then back to all.
func (s *FilterState) CycleStatus() string {
	values := []string{filter.All}
	for _, st := range models.Statuses() {
		values = append(values, string(st))
	}
	s.status = next(values, s.status)
	return s.status
}

// CycleAssignee advances the assignee criterion through all and userIDs.
func (s *FilterState) CycleAssignee(userIDs []string) string {
	values := append([]string{filter.All}, userIDs...)
	s.assignee = next(values, s.assignee)
	return s.assignee
}

// Clear resets every criterion to all.
func (s *FilterState) Clear() {
	s.status = filter.All
	s.assignee = filter.All
}

// Active reports whether any criterion narrows the board.
func (s *FilterState) Active() bool {
	return s.status != filter.All || s.assignee != filter.All
}

// Filter builds the filter for the current criteria.
func (s *FilterState) Filter() filter.Filter {
	return filter.Filter{Assignee: s.assignee, Status: s.status, Priority: filter.All}
}

func next(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

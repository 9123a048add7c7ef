package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/taskboard/internal/filter"
)

func TestUIStateClampSelection(t *testing.T) {
	s := NewUIState()
	s.SetSelectedColumn(3)
	s.SetSelectedTask(5)

	s.ClampSelection([]int{3, 3, 2, 0})
	assert.Equal(t, 3, s.SelectedColumn())
	assert.Equal(t, 0, s.SelectedTask())

	s.SetSelectedColumn(2)
	s.SetSelectedTask(9)
	s.ClampSelection([]int{3, 3, 2, 0})
	assert.Equal(t, 1, s.SelectedTask())

	s.ClampSelection(nil)
	assert.Equal(t, 0, s.SelectedColumn())

	s.SetSelectedTask(-4)
	assert.Equal(t, 0, s.SelectedTask())
}

func TestFilterStateCycles(t *testing.T) {
	s := NewFilterState()
	assert.False(t, s.Active())

	var seen []string
	for range 5 {
		seen = append(seen, s.CycleStatus())
	}
	assert.Equal(t, []string{"todo", "in-progress", "review", "done", filter.All}, seen)

	assert.Equal(t, "u1", s.CycleAssignee([]string{"u1", "u2"}))
	assert.Equal(t, "u2", s.CycleAssignee([]string{"u1", "u2"}))
	assert.True(t, s.Active())
	assert.Equal(t, filter.Filter{Assignee: "u2", Status: filter.All, Priority: filter.All}, s.Filter())

	// a deleted user falls back to the start of the cycle
	assert.Equal(t, filter.All, s.CycleAssignee([]string{"u1"}))

	s.CycleStatus()
	s.Clear()
	assert.False(t, s.Active())
}

func TestNotificationState(t *testing.T) {
	s := NewNotificationState()
	s.Add(LevelInfo, "moved")
	assert.True(t, s.HasAny())
	assert.False(t, s.HasErrors())

	s.Add(LevelError, "refused")
	assert.True(t, s.HasErrors())
	assert.Len(t, s.All(), 2)

	s.Clear()
	assert.False(t, s.HasAny())
}

package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/filter"
	"github.com/thenoetrevino/taskboard/internal/models"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// handleNormalMode dispatches key events in NormalMode to specific handlers.
func (m *Model) handleNormalMode(msg tea.KeyPressMsg) tea.Cmd {
	m.NotificationState.Clear()

	key := msg.String()
	km := m.Config.KeyMappings

	switch key {
	case km.Quit, "ctrl+c":
		return tea.Quit
	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)
	case km.PrevColumn, "left":
		m.navigateColumn(-1)
	case km.NextColumn, "right":
		m.navigateColumn(1)
	case km.PrevTask, "up":
		m.navigateTask(-1)
	case km.NextTask, "down":
		m.navigateTask(1)
	case km.MoveTaskLeft, "shift+left":
		m.moveSelected(-1)
	case km.MoveTaskRight, "shift+right":
		m.moveSelected(1)
	case km.ToggleSubtask:
		m.toggleNextSubtask()
	case km.CycleStatusFilter:
		m.cycleStatusFilter()
	case km.CycleAssigneeFilter:
		m.cycleAssigneeFilter()
	case km.ClearFilter:
		m.clearFilter()
	case km.AddTask:
		return m.openTaskForm()
	case km.DeleteTask:
		m.confirmDelete()
	}
	return nil
}

// navigateColumn moves the focus one column left or right.
func (m *Model) navigateColumn(delta int) {
	col := m.UiState.SelectedColumn() + delta
	if col < 0 || col >= len(m.AppState.Columns()) {
		return
	}
	m.UiState.SetSelectedColumn(col)
	m.UiState.SetSelectedTask(0)
}

// navigateTask moves the cursor one task up or down inside the column.
func (m *Model) navigateTask(delta int) {
	idx := m.UiState.SelectedTask() + delta
	counts := m.AppState.Counts()
	if idx < 0 || m.UiState.SelectedColumn() >= len(counts) || idx >= counts[m.UiState.SelectedColumn()] {
		return
	}
	m.UiState.SetSelectedTask(idx)
}

// moveSelected turns the key press into a transition event and applies it
// through the task service. The cursor follows the task.
func (m *Model) moveSelected(delta int) {
	task, ok := m.selectedTask()
	if !ok {
		m.NotificationState.Add(state.LevelInfo, "No task selected")
		return
	}

	ev, err := board.Step(task, delta)
	if err != nil {
		m.NotificationState.Add(state.LevelInfo, capitalize(err.Error()))
		return
	}

	ctx, cancel := m.opContext()
	defer cancel()

	moved, err := board.Apply(ctx, m.App.TaskService, ev)
	if err != nil {
		m.logger.Warn().Err(err).Str("task_id", task.ID).Str("transition", ev.String()).Msg("transition refused")
		m.NotificationState.Add(state.LevelError, "Cannot move task: "+err.Error())
		m.reload()
		return
	}

	m.reload()
	m.follow(moved.ID)
	m.NotificationState.Add(state.LevelInfo, fmt.Sprintf("Moved %q to %s", moved.Title, moved.Status.Label()))
}

// toggleNextSubtask completes the first open subtask of the selected task.
// The task stays in its column.
func (m *Model) toggleNextSubtask() {
	task, ok := m.selectedTask()
	if !ok {
		m.NotificationState.Add(state.LevelInfo, "No task selected")
		return
	}

	ctx, cancel := m.opContext()
	defer cancel()

	updated, err := m.App.TaskService.ToggleNextSubtask(ctx, task.ID)
	switch {
	case errors.Is(err, taskservice.ErrNoOpenSubtasks):
		m.NotificationState.Add(state.LevelInfo, "No open subtasks")
		return
	case err != nil:
		m.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to toggle subtask")
		m.NotificationState.Add(state.LevelError, "Error toggling subtask: "+err.Error())
		return
	}

	m.reload()
	m.follow(updated.ID)
	p := updated.Progress()
	m.NotificationState.Add(state.LevelInfo, fmt.Sprintf("Subtasks %d/%d", p.Done, p.Total))
}

func (m *Model) cycleStatusFilter() {
	status := m.FilterState.CycleStatus()
	m.reload()
	if status == filter.All {
		m.NotificationState.Add(state.LevelInfo, "Status filter: all")
		return
	}
	// jump to the only column that can have tasks
	if st, err := models.ParseStatus(status); err == nil {
		m.UiState.SetSelectedColumn(st.Index())
		m.UiState.SetSelectedTask(0)
	}
	m.NotificationState.Add(state.LevelInfo, "Status filter: "+status)
}

func (m *Model) cycleAssigneeFilter() {
	assignee := m.FilterState.CycleAssignee(m.AppState.UserIDs())
	m.reload()
	name := filter.All
	if assignee != filter.All {
		name = m.AppState.Names().User(assignee)
	}
	m.NotificationState.Add(state.LevelInfo, "Assignee filter: "+name)
}

func (m *Model) clearFilter() {
	if !m.FilterState.Active() {
		return
	}
	m.FilterState.Clear()
	m.reload()
	m.NotificationState.Add(state.LevelInfo, "Filters cleared")
}

// confirmDelete asks before deleting the selected task.
func (m *Model) confirmDelete() {
	if _, ok := m.selectedTask(); !ok {
		m.NotificationState.Add(state.LevelInfo, "No task selected")
		return
	}
	m.UiState.SetMode(state.DeleteConfirmMode)
}

// handleDeleteConfirm deletes the selected task on "y"; any other key cancels.
func (m *Model) handleDeleteConfirm(msg tea.KeyPressMsg) tea.Cmd {
	m.UiState.SetMode(state.NormalMode)
	if msg.String() != "y" {
		return nil
	}

	task, ok := m.selectedTask()
	if !ok {
		return nil
	}

	ctx, cancel := m.opContext()
	defer cancel()

	if err := m.App.TaskService.DeleteTask(ctx, task.ID); err != nil {
		m.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to delete task")
		m.NotificationState.Add(state.LevelError, "Error deleting task: "+err.Error())
		return nil
	}
	m.reload()
	m.NotificationState.Add(state.LevelInfo, fmt.Sprintf("Deleted %q", task.Title))
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

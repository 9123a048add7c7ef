package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/taskboard/internal/models"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
	"github.com/thenoetrevino/taskboard/internal/tui/huhforms"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// openTaskForm starts the task creation form for the focused column.
func (m *Model) openTaskForm() tea.Cmd {
	fs := m.FormState
	fs.Reset(m.selectedStatus())
	fs.Form = huhforms.CreateTaskForm(
		&fs.FormTitle,
		&fs.FormDescription,
		&fs.FormPriority,
		&fs.FormAssignee,
		&fs.FormConfirm,
		m.AppState.Users(),
	).WithTheme(huhforms.CreateTheme(m.Config.ColorScheme))

	m.UiState.SetMode(state.TaskFormMode)
	return fs.Form.Init()
}

// updateTaskForm forwards messages to the form and creates the task once it
// completes. Esc discards the form.
func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fs := m.FormState
	if fs.Form == nil {
		m.UiState.SetMode(state.NormalMode)
		return m, nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "esc" {
		m.closeTaskForm()
		m.NotificationState.Add(state.LevelInfo, "Task discarded")
		return m, nil
	}

	model, cmd := fs.Form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		fs.Form = f
	}

	switch fs.Form.State {
	case huh.StateCompleted:
		if fs.FormConfirm {
			m.createTaskFromForm()
		}
		m.closeTaskForm()
		return m, nil
	case huh.StateAborted:
		m.closeTaskForm()
		return m, nil
	}
	return m, cmd
}

// createTaskFromForm creates a task from the form values in the column the
// form was opened from.
func (m *Model) createTaskFromForm() {
	fs := m.FormState
	ctx, cancel := m.opContext()
	defer cancel()

	task, err := m.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:       fs.Title(),
		Description: fs.Description(),
		Status:      fs.FormStatus,
		Priority:    models.Priority(fs.FormPriority),
		AssigneeID:  fs.FormAssignee,
		ProjectID:   m.Config.Board.DefaultProject,
	})
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to create task")
		m.NotificationState.Add(state.LevelError, "Error creating task: "+err.Error())
		return
	}

	m.reload()
	m.follow(task.ID)
	m.NotificationState.Add(state.LevelInfo, fmt.Sprintf("Created %q in %s", task.Title, task.Status.Label()))
}

func (m *Model) closeTaskForm() {
	m.FormState.Reset(models.StatusTodo)
	m.UiState.SetMode(state.NormalMode)
}

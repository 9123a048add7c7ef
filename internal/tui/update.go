package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
// This implements the "Update" part of the Model-View-Update pattern
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.Ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case RefreshMsg:
		m.reload()
		return m, m.listen()

	case tea.WindowSizeMsg:
		m.UiState.SetWidth(msg.Width)
		m.UiState.SetHeight(msg.Height)
		return m, nil
	}

	// forms need every message, not just key presses
	if m.UiState.Mode() == state.TaskFormMode {
		return m.updateTaskForm(msg)
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		return m, m.handleKey(key)
	}
	return m, nil
}

// handleKey dispatches key presses to the handler for the current mode.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.UiState.Mode() {
	case state.HelpMode:
		return m.handleHelpMode(msg)
	case state.DeleteConfirmMode:
		return m.handleDeleteConfirm(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleHelpMode closes the help screen on any of its keys.
func (m *Model) handleHelpMode(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case m.Config.KeyMappings.ShowHelp, m.Config.KeyMappings.Quit, "esc", "enter":
		m.UiState.SetMode(state.NormalMode)
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

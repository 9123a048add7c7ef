package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// cardHeight is the height of a card with a due date, borders included.
const cardHeight = 5

// chromeHeight is the space taken by the header, column titles, borders,
// the status line and the footer.
const chromeHeight = 8

// View renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	switch m.UiState.Mode() {
	case state.HelpMode:
		view.Content = m.viewHelp()
	case state.TaskFormMode:
		view.Content = m.viewTaskForm()
	default:
		view.Content = m.viewBoard()
	}
	return view
}

func (m Model) renderOptions() board.RenderOptions {
	width := m.Config.Board.ColumnWidth
	if w := m.UiState.Width()/len(m.AppState.Columns()) - 2; w < width {
		width = w
	}

	maxCards := 0
	if h := m.UiState.Height(); h > 0 {
		maxCards = max((h-chromeHeight)/cardHeight, 1)
	}

	return board.RenderOptions{
		Styles:         board.NewStyles(m.Config.ColorScheme, width),
		Names:          m.AppState.Names(),
		Now:            m.Now(),
		SelectedColumn: m.UiState.SelectedColumn(),
		SelectedTask:   m.UiState.SelectedTask(),
		MaxCards:       maxCards,
	}
}

func (m Model) viewBoard() string {
	opts := m.renderOptions()

	header := opts.Styles.Title.Render("taskboard")
	if m.FilterState.Active() {
		header += "  " + opts.Styles.Subtle.Render("filter: "+m.FilterState.Filter().String())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		board.RenderBoard(m.AppState.Columns(), opts),
		m.viewStatusLine(),
		opts.Styles.Subtle.Render(m.footer()),
	)
}

// viewStatusLine shows the delete prompt or the current notifications.
func (m Model) viewStatusLine() string {
	scheme := m.Config.ColorScheme
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.ErrorFg)).Bold(true)
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.InfoFg))

	if m.UiState.Mode() == state.DeleteConfirmMode {
		task, _ := m.selectedTask()
		return errStyle.Render(fmt.Sprintf("Delete %q? (y/n)", task.Title))
	}

	parts := make([]string, 0, len(m.NotificationState.All()))
	for _, n := range m.NotificationState.All() {
		if n.Level == state.LevelError {
			parts = append(parts, errStyle.Render("✗ "+n.Message))
		} else {
			parts = append(parts, infoStyle.Render(n.Message))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) footer() string {
	km := m.Config.KeyMappings
	return fmt.Sprintf("%s help · %s add · %s/%s move · %s filter · %s quit",
		km.ShowHelp, km.AddTask, km.MoveTaskLeft, km.MoveTaskRight, km.CycleStatusFilter, km.Quit)
}

func (m Model) viewTaskForm() string {
	if m.FormState.Form == nil {
		return ""
	}
	scheme := m.Config.ColorScheme
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)).
		Render("New task in " + m.FormState.FormStatus.Label())
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Accent)).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.FormState.Form.View()))

	return lipgloss.Place(m.UiState.Width(), m.UiState.Height(), lipgloss.Center, lipgloss.Center, box)
}

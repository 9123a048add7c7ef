package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

type helpEntry struct {
	keys string
	desc string
}

func (m Model) helpEntries() []helpEntry {
	km := m.Config.KeyMappings
	return []helpEntry{
		{km.PrevColumn + "/" + km.NextColumn, "focus previous/next column"},
		{km.PrevTask + "/" + km.NextTask, "select previous/next task"},
		{km.MoveTaskLeft + "/" + km.MoveTaskRight, "move task to previous/next column"},
		{km.ToggleSubtask, "complete the next open subtask"},
		{km.AddTask, "add a task to the focused column"},
		{km.DeleteTask, "delete the selected task"},
		{km.CycleStatusFilter, "cycle the status filter"},
		{km.CycleAssigneeFilter, "cycle the assignee filter"},
		{km.ClearFilter, "clear filters"},
		{km.ShowHelp, "toggle this help"},
		{km.Quit, "quit"},
	}
}

func (m Model) viewHelp() string {
	scheme := m.Config.ColorScheme
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Accent)).Bold(true).Width(10)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, e := range m.helpEntries() {
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render(e.keys), e.desc)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Accent)).
		Padding(1, 2).
		Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.Place(m.UiState.Width(), m.UiState.Height(), lipgloss.Center, lipgloss.Center, box)
}

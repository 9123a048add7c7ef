package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskboard/internal/events"
)

// RefreshMsg signals that the workspace changed and the board should reload.
type RefreshMsg struct {
	Event events.Event
}

// listen returns a command that waits for the next workspace event.
func (m Model) listen() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub, ctx := m.sub, m.Ctx

	return func() tea.Msg {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return nil
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/taskboard/internal/app"
)

// Run starts the board and blocks until the user quits or ctx is done.
func Run(ctx context.Context, a *app.App, opts ...Option) error {
	m := InitialModel(ctx, a, opts...)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}

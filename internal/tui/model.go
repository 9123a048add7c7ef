// Package tui is the interactive kanban board.
package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/tui/state"
)

// operationTimeout bounds a single service call made from a key press.
const operationTimeout = 5 * time.Second

// Model represents the application state for the TUI
type Model struct {
	Ctx    context.Context
	App    *app.App
	Config *config.Config
	Now    func() time.Time

	AppState          *state.AppState
	UiState           *state.UIState
	FilterState       *state.FilterState
	FormState         *state.FormState
	NotificationState *state.NotificationState

	styles board.Styles
	sub    *events.Subscription
	logger zerolog.Logger
}

// Option configures the initial model.
type Option func(*Model)

// WithClock sets the clock used for due dates.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.Now = now }
}

// InitialModel creates the board model and loads the workspace. The model
// subscribes to the app's event bus so changes made elsewhere show up.
func InitialModel(ctx context.Context, a *app.App, opts ...Option) Model {
	cfg := a.Config()
	m := Model{
		Ctx:               ctx,
		App:               a,
		Config:            cfg,
		Now:               time.Now,
		AppState:          state.NewAppState(),
		UiState:           state.NewUIState(),
		FilterState:       state.NewFilterState(),
		FormState:         state.NewFormState(),
		NotificationState: state.NewNotificationState(),
		styles:            board.NewStyles(cfg.ColorScheme, cfg.Board.ColumnWidth),
		sub:               a.Bus().Subscribe("", 0),
		logger:            logging.Component("tui"),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.reload()
	return m
}

// Init starts listening for workspace events.
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.listen()
}

// opContext derives the context for one service call.
func (m Model) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.Ctx, operationTimeout)
}

// reload rebuilds the columns from the workspace under the current filter
// and keeps the selection in range.
func (m *Model) reload() {
	ctx, cancel := m.opContext()
	defer cancel()

	snap := m.App.Store().State()
	m.AppState.SetUsers(snap.Users(), snap.Projects())

	tasks, err := m.App.TaskService.ListTasks(ctx, m.FilterState.Filter())
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load tasks")
		m.NotificationState.Add(state.LevelError, "Error loading tasks: "+err.Error())
		return
	}
	m.AppState.SetColumns(board.Columns(tasks))
	m.UiState.ClampSelection(m.AppState.Counts())
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (models.Task, bool) {
	return m.AppState.Task(m.UiState.SelectedColumn(), m.UiState.SelectedTask())
}

// selectedStatus returns the status of the focused column.
func (m Model) selectedStatus() models.Status {
	cols := m.AppState.Columns()
	if m.UiState.SelectedColumn() < len(cols) {
		return cols[m.UiState.SelectedColumn()].ID
	}
	return models.StatusTodo
}

// follow moves the cursor onto taskID if it is on the board.
func (m *Model) follow(taskID string) {
	col, idx := board.Locate(m.AppState.Columns(), taskID)
	if col < 0 {
		return
	}
	m.UiState.SetSelectedColumn(col)
	m.UiState.SetSelectedTask(idx)
}

// Close releases the event subscription.
func (m Model) Close() {
	if m.sub != nil {
		m.sub.Close()
	}
}

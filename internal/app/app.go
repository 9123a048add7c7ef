package app

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/models"
	projectservice "github.com/thenoetrevino/taskboard/internal/services/project"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
	userservice "github.com/thenoetrevino/taskboard/internal/services/user"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// App holds all application services and provides dependency injection.
type App struct {
	store  *workspace.Store
	bus    *events.Bus
	repo   *database.Repository
	config *config.Config

	TaskService    taskservice.Service
	ProjectService projectservice.Service
	UserService    userservice.Service
}

// New creates a new App with all services initialized.
func New(store *workspace.Store, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bus == nil {
		cfg.bus = events.NewBus(logging.Component("events"))
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}

	return &App{
		store:          store,
		bus:            cfg.bus,
		repo:           cfg.repo,
		config:         cfg.config,
		TaskService:    taskservice.NewService(store, cfg.bus),
		ProjectService: projectservice.NewService(store, cfg.bus),
		UserService:    userservice.NewService(store, cfg.bus),
	}
}

func (a *App) Store() *workspace.Store { return a.store }

func (a *App) Bus() *events.Bus { return a.bus }

func (a *App) Config() *config.Config { return a.config }

// Names resolves user and project ids against the current workspace.
func (a *App) Names() board.Names {
	s := a.store.State()
	return board.NewNames(s.Users(), s.Projects())
}

// Export returns a copy of the whole workspace.
func (a *App) Export() models.Snapshot {
	return a.store.State().Snapshot()
}

// Import replaces the workspace with snap. The snapshot is validated as a
// whole; on error nothing changes.
func (a *App) Import(ctx context.Context, snap models.Snapshot) error {
	if _, err := a.store.Dispatch(ctx, workspace.Load{Snapshot: snap}); err != nil {
		return fmt.Errorf("failed to import workspace: %w", err)
	}
	return nil
}

// Close shuts the event bus and releases the repository, if App owns one.
func (a *App) Close() error {
	a.bus.Close()
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

package project

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/filter"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

const maxNameLength = 100

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	Stats(ctx context.Context, id string) (models.ProjectStats, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
}

type service struct {
	store     *workspace.Store
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewService creates a new project service. A nil publisher discards events.
func NewService(store *workspace.Store, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		store:     store,
		publisher: publisher,
		logger:    logging.Component("project"),
	}
}

// ListProjects returns every project in creation order
func (s *service) ListProjects(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.State().Projects(), nil
}

// GetProject retrieves a project by id
func (s *service) GetProject(ctx context.Context, id string) (models.Project, error) {
	if err := ctx.Err(); err != nil {
		return models.Project{}, err
	}
	if strings.TrimSpace(id) == "" {
		return models.Project{}, ErrInvalidProjectID
	}
	p, ok := s.store.State().Project(id)
	if !ok {
		return models.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return p, nil
}

// Stats counts a project's tasks per status. An empty id or "all" counts the
// whole workspace.
func (s *service) Stats(ctx context.Context, id string) (models.ProjectStats, error) {
	if err := ctx.Err(); err != nil {
		return models.ProjectStats{}, err
	}

	state := s.store.State()
	scoped := id != "" && id != filter.All
	if scoped {
		if _, ok := state.Project(id); !ok {
			return models.ProjectStats{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
	}

	stats := models.ProjectStats{ProjectID: id, ByStatus: make(map[models.Status]int, 4)}
	for _, st := range models.Statuses() {
		stats.ByStatus[st] = 0
	}
	for _, t := range state.Tasks() {
		if scoped && t.ProjectID != id {
			continue
		}
		stats.Total++
		stats.ByStatus[t.Status]++
	}
	return stats, nil
}

// CreateProject validates and creates a new project
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (models.Project, error) {
	if err := criterio.ValidateStruct(criterio.Run("name", req.Name, validName)); err != nil {
		return models.Project{}, err
	}

	p := models.Project{
		ID:          s.store.NewID(),
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
	}
	state, err := s.store.Dispatch(ctx, workspace.CreateProject{Project: p})
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	created, _ := state.Project(p.ID)
	s.publish(ctx, events.Event{Type: events.ProjectCreated, ProjectID: created.ID})
	return created, nil
}

// DeleteProject removes a project. Projects that still own tasks are kept.
func (s *service) DeleteProject(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidProjectID
	}
	if _, err := s.store.Dispatch(ctx, workspace.DeleteProject{ProjectID: id}); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.publish(ctx, events.Event{Type: events.ProjectDeleted, ProjectID: id})
	return nil
}

func validName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func (s *service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(event.Type)).Msg("failed to publish event")
	}
}

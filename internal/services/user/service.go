package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

const (
	maxNameLength   = 100
	maxAvatarLength = 4
)

// Service defines user management operations
type Service interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// CreateUserRequest encapsulates data for creating a user. An empty Avatar
// becomes the name's initials.
type CreateUserRequest struct {
	Name   string
	Avatar string
}

type service struct {
	store     *workspace.Store
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewService creates a new user service. A nil publisher discards events.
func NewService(store *workspace.Store, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		store:     store,
		publisher: publisher,
		logger:    logging.Component("user"),
	}
}

func (s *service) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.State().Users(), nil
}

func (s *service) GetUser(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	if strings.TrimSpace(id) == "" {
		return models.User{}, ErrInvalidUserID
	}
	u, ok := s.store.State().User(id)
	if !ok {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return u, nil
}

// CreateUser validates and adds a user
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (models.User, error) {
	err := criterio.ValidateStruct(
		criterio.Run("name", req.Name, validName),
		criterio.Run("avatar", req.Avatar, validAvatar),
	)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{ID: s.store.NewID(), Name: req.Name, Avatar: strings.TrimSpace(req.Avatar)}
	state, err := s.store.Dispatch(ctx, workspace.CreateUser{User: u})
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	created, _ := state.User(u.ID)
	s.publish(ctx, events.Event{Type: events.UserCreated, UserID: created.ID})
	return created, nil
}

// DeleteUser removes a user. Their tasks stay, unassigned.
func (s *service) DeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidUserID
	}
	if _, err := s.store.Dispatch(ctx, workspace.DeleteUser{UserID: id}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.publish(ctx, events.Event{Type: events.UserDeleted, UserID: id})
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

func validAvatar(avatar string) error {
	if utf8.RuneCountInString(strings.TrimSpace(avatar)) > maxAvatarLength {
		return ErrAvatarTooLong
	}
	return nil
}

func (s *service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(event.Type)).Msg("failed to publish event")
	}
}

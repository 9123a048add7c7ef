package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/filter"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

const maxTitleLength = 255

// publishRetries bounds how often a failed event publish is retried.
const publishRetries = 2

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID string) (models.Task, error)
	ListTasks(ctx context.Context, f filter.Filter) ([]models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error

	// Task movements
	MoveTask(ctx context.Context, taskID string, to models.Status) (models.Task, error)
	MoveTaskToNextColumn(ctx context.Context, taskID string) (models.Task, error)
	MoveTaskToPrevColumn(ctx context.Context, taskID string) (models.Task, error)

	// Subtasks
	AddSubtask(ctx context.Context, taskID, title string) (models.Task, error)
	RemoveSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error)
	ToggleSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error)
	ToggleNextSubtask(ctx context.Context, taskID string) (models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task.
// Empty Status and Priority fall back to todo and medium.
type CreateTaskRequest struct {
	Title       string
	Description string
	Status      models.Status
	Priority    models.Priority
	AssigneeID  string
	ProjectID   string
	DueDate     *time.Time
	Tags        []string
	Subtasks    []string // subtask titles, in order
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID       string
	Title        *string
	Description  *string
	Priority     *models.Priority
	AssigneeID   *string
	ProjectID    *string
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *[]string
}

// service implements Service interface
type service struct {
	store     *workspace.Store
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewService creates a new task service. A nil publisher discards events.
func NewService(store *workspace.Store, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		store:     store,
		publisher: publisher,
		logger:    logging.Component("task"),
	}
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	if err := ctx.Err(); err != nil {
		return models.Task{}, err
	}
	if strings.TrimSpace(taskID) == "" {
		return models.Task{}, ErrInvalidTaskID
	}

	task, ok := s.store.State().Task(taskID)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return task, nil
}

// ListTasks returns every task matching f, in workspace order (or by search
// relevance when f.Query is set)
func (s *service) ListTasks(ctx context.Context, f filter.Filter) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return filter.Apply(s.store.State().Tasks(), f), nil
}

// CreateTask handles task creation with validation and business rules
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	if err := validateCreateTask(req); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          s.store.NewID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	for _, title := range req.Subtasks {
		if strings.TrimSpace(title) == "" {
			continue
		}
		task.Subtasks = append(task.Subtasks, models.Subtask{ID: s.store.NewID(), Title: strings.TrimSpace(title)})
	}

	state, err := s.store.Dispatch(ctx, workspace.CreateTask{Task: task})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	created, _ := state.Task(task.ID)
	s.publish(ctx, events.Event{Type: events.TaskCreated, TaskID: created.ID, ProjectID: created.ProjectID, To: created.Status})
	return created, nil
}

// UpdateTask handles task updates with validation
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (models.Task, error) {
	if strings.TrimSpace(req.TaskID) == "" {
		return models.Task{}, ErrInvalidTaskID
	}
	if err := validateUpdateTask(req); err != nil {
		return models.Task{}, err
	}

	patch := workspace.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
		ProjectID:    req.ProjectID,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Tags:         req.Tags,
	}
	if patch.IsEmpty() {
		return models.Task{}, ErrEmptyPatch
	}

	state, err := s.store.Dispatch(ctx, workspace.UpdateTask{TaskID: req.TaskID, Patch: patch})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	updated, _ := state.Task(req.TaskID)
	s.publish(ctx, events.Event{Type: events.TaskUpdated, TaskID: updated.ID, ProjectID: updated.ProjectID})
	return updated, nil
}

// DeleteTask handles task deletion
func (s *service) DeleteTask(ctx context.Context, taskID string) error {
	if strings.TrimSpace(taskID) == "" {
		return ErrInvalidTaskID
	}

	prev, _ := s.store.State().Task(taskID)
	if _, err := s.store.Dispatch(ctx, workspace.DeleteTask{TaskID: taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.TaskDeleted, TaskID: taskID, ProjectID: prev.ProjectID})
	return nil
}

// MoveTask sets the task's status. Moving onto the current status returns the
// task unchanged and publishes nothing.
func (s *service) MoveTask(ctx context.Context, taskID string, to models.Status) (models.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return models.Task{}, ErrInvalidTaskID
	}
	if !to.IsValid() {
		return models.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	prev, next, err := s.store.Commit(ctx, workspace.MoveTask{TaskID: taskID, To: to})
	if err != nil {
		current, _ := prev.Task(taskID)
		return current, fmt.Errorf("failed to move task: %w", err)
	}

	before, _ := prev.Task(taskID)
	moved, _ := next.Task(taskID)
	if before.Status != moved.Status {
		s.logger.Debug().
			Str("task_id", taskID).
			Str("from", string(before.Status)).
			Str("to", string(moved.Status)).
			Msg("task moved")
		s.publish(ctx, events.Event{
			Type:      events.TaskMoved,
			TaskID:    taskID,
			ProjectID: moved.ProjectID,
			From:      before.Status,
			To:        moved.Status,
		})
	}
	return moved, nil
}

// MoveTaskToNextColumn moves task to next column
func (s *service) MoveTaskToNextColumn(ctx context.Context, taskID string) (models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	next, err := task.Status.Next()
	if err != nil {
		return task, ErrAlreadyLastColumn
	}
	return s.MoveTask(ctx, taskID, next)
}

// MoveTaskToPrevColumn moves task to previous column
func (s *service) MoveTaskToPrevColumn(ctx context.Context, taskID string) (models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	prev, err := task.Status.Prev()
	if err != nil {
		return task, ErrAlreadyFirstColumn
	}
	return s.MoveTask(ctx, taskID, prev)
}

// AddSubtask appends a subtask to the task's checklist
func (s *service) AddSubtask(ctx context.Context, taskID, title string) (models.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return models.Task{}, ErrInvalidTaskID
	}
	if err := criterio.ValidateStruct(criterio.Run("title", title, validTitle)); err != nil {
		return models.Task{}, err
	}

	sub := models.Subtask{ID: s.store.NewID(), Title: title}
	state, err := s.store.Dispatch(ctx, workspace.AddSubtask{TaskID: taskID, Subtask: sub})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to add subtask: %w", err)
	}

	task, _ := state.Task(taskID)
	s.publish(ctx, events.Event{Type: events.TaskUpdated, TaskID: taskID, ProjectID: task.ProjectID})
	return task, nil
}

// RemoveSubtask deletes a subtask from the task's checklist
func (s *service) RemoveSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return models.Task{}, ErrInvalidTaskID
	}

	state, err := s.store.Dispatch(ctx, workspace.RemoveSubtask{TaskID: taskID, SubtaskID: subtaskID})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to remove subtask: %w", err)
	}

	task, _ := state.Task(taskID)
	s.publish(ctx, events.Event{Type: events.TaskUpdated, TaskID: taskID, ProjectID: task.ProjectID})
	return task, nil
}

// ToggleSubtask flips one subtask. The task's status is never changed, even
// when this completes the last open subtask.
func (s *service) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return models.Task{}, ErrInvalidTaskID
	}

	state, err := s.store.Dispatch(ctx, workspace.ToggleSubtask{TaskID: taskID, SubtaskID: subtaskID})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to toggle subtask: %w", err)
	}

	task, _ := state.Task(taskID)
	s.publish(ctx, events.Event{Type: events.SubtaskToggled, TaskID: taskID, ProjectID: task.ProjectID})
	return task, nil
}

// ToggleNextSubtask completes the first incomplete subtask
func (s *service) ToggleNextSubtask(ctx context.Context, taskID string) (models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	for _, st := range task.Subtasks {
		if !st.Completed {
			return s.ToggleSubtask(ctx, taskID, st.ID)
		}
	}
	return task, ErrNoOpenSubtasks
}

// ============================================================================
// VALIDATION
// ============================================================================

func validateCreateTask(req CreateTaskRequest) error {
	return criterio.ValidateStruct(
		criterio.Run("title", req.Title, validTitle),
		criterio.Run("status", string(req.Status), optionalStatus),
		criterio.Run("priority", string(req.Priority), optionalPriority),
	)
}

func validateUpdateTask(req UpdateTaskRequest) error {
	var errs criterio.FieldErrorsBuilder
	if req.Title != nil {
		if err := validTitle(*req.Title); err != nil {
			errs = errs.Append("title", err)
		}
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		errs = errs.Append("priority", fmt.Errorf("%w: %q", ErrInvalidPriority, *req.Priority))
	}
	if req.ClearDueDate && req.DueDate != nil {
		errs = errs.Append("due_date", errors.New("cannot set and clear the due date at once"))
	}
	return errs.ToError()
}

func validTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func optionalStatus(v string) error {
	if v != "" && !models.Status(v).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return nil
}

func optionalPriority(v string) error {
	if v != "" && !models.Priority(v).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, v)
	}
	return nil
}

// publish sends a task event. Delivery failures are logged, never returned:
// the workspace change has already been committed.
func (s *service) publish(ctx context.Context, event events.Event) {
	if err := events.PublishWithRetry(ctx, s.publisher, event, publishRetries); err != nil {
		s.logger.Warn().Err(err).
			Str("event_type", string(event.Type)).
			Str("task_id", event.TaskID).
			Msg("failed to publish event")
	}
}

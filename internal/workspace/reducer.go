package workspace

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workflow"
)

// Reducer applies actions to states. Given the same clock reading, Reduce is a
// pure function of its inputs.
type Reducer struct {
	Policy workflow.TransitionPolicy
	Now    func() time.Time
}

// NewReducer returns a reducer with the free policy and the wall clock.
func NewReducer() Reducer {
	return Reducer{Policy: workflow.Free{}, Now: time.Now}
}

// Reduce returns the state that results from applying a to s. On error the
// returned state is s unchanged.
func (r Reducer) Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case MoveTask:
		return r.moveTask(s, a)
	case UpdateTask:
		return r.updateTask(s, a)
	case ToggleSubtask:
		return r.toggleSubtask(s, a)
	case CreateTask:
		return r.createTask(s, a)
	case DeleteTask:
		return r.deleteTask(s, a)
	case AddSubtask:
		return r.addSubtask(s, a)
	case RemoveSubtask:
		return r.removeSubtask(s, a)
	case CreateProject:
		return r.createProject(s, a)
	case DeleteProject:
		return r.deleteProject(s, a)
	case CreateUser:
		return r.createUser(s, a)
	case DeleteUser:
		return r.deleteUser(s, a)
	case Load:
		return r.load(s, a)
	case nil:
		return s, fmt.Errorf("%w: nil", ErrUnknownAction)
	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
}

func (r Reducer) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now().UTC()
}

func (r Reducer) policy() workflow.TransitionPolicy {
	if r.Policy == nil {
		return workflow.Free{}
	}
	return r.Policy
}

// ============================================================================
// TASKS
// ============================================================================

func (r Reducer) moveTask(s State, a MoveTask) (State, error) {
	if !a.To.IsValid() {
		return s, fmt.Errorf("%w: %q", models.ErrInvalidStatus, a.To)
	}

	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrTaskNotFound, a.TaskID)
	}

	task := s.tasks[i]
	if task.Status == a.To {
		return s, nil
	}

	if err := r.policy().Allow(task, a.To); err != nil {
		return s, err
	}

	moved := task.Clone()
	moved.Status = a.To
	return s.withTask(i, moved), nil
}

func (r Reducer) updateTask(s State, a UpdateTask) (State, error) {
	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrTaskNotFound, a.TaskID)
	}
	if a.Patch.IsEmpty() {
		return s, nil
	}

	p := a.Patch
	t := s.tasks[i].Clone()

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return s, ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		if !p.Priority.IsValid() {
			return s, fmt.Errorf("%w: %q", models.ErrInvalidPriority, *p.Priority)
		}
		t.Priority = *p.Priority
	}
	if p.AssigneeID != nil {
		if *p.AssigneeID != "" && s.userIndex(*p.AssigneeID) < 0 {
			return s, fmt.Errorf("%w: %s", ErrUserNotFound, *p.AssigneeID)
		}
		t.AssigneeID = *p.AssigneeID
	}
	if p.ProjectID != nil {
		if *p.ProjectID != "" && s.projectIndex(*p.ProjectID) < 0 {
			return s, fmt.Errorf("%w: %s", ErrProjectNotFound, *p.ProjectID)
		}
		t.ProjectID = *p.ProjectID
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Tags != nil {
		t.Tags = models.NormalizeTags(*p.Tags)
	}
	if p.Attachments != nil {
		if err := checkAttachments(*p.Attachments); err != nil {
			return s, err
		}
		t.Attachments = slices.Clone(*p.Attachments)
	}

	t.UpdatedAt = r.now()
	return s.withTask(i, t), nil
}

func (r Reducer) toggleSubtask(s State, a ToggleSubtask) (State, error) {
	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrTaskNotFound, a.TaskID)
	}

	t := s.tasks[i]
	j := slices.IndexFunc(t.Subtasks, func(st models.Subtask) bool { return st.ID == a.SubtaskID })
	if j < 0 {
		return s, fmt.Errorf("%w: %s", ErrSubtaskNotFound, a.SubtaskID)
	}

	// Clone gives the task a fresh subtask slice; the old one stays with the
	// previous state.
	toggled := t.Clone()
	toggled.Subtasks[j].Completed = !toggled.Subtasks[j].Completed
	toggled.UpdatedAt = r.now()
	return s.withTask(i, toggled), nil
}

func (r Reducer) createTask(s State, a CreateTask) (State, error) {
	t, err := r.normalizeTask(s, a.Task.Clone())
	if err != nil {
		return s, err
	}
	if s.taskIndex(t.ID) >= 0 {
		return s, fmt.Errorf("%w: task %s", ErrDuplicateID, t.ID)
	}

	now := r.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	s.tasks = append(slices.Clip(s.tasks), t)
	s.version++
	return s, nil
}

// normalizeTask validates a task for insertion and fills defaults.
func (r Reducer) normalizeTask(s State, t models.Task) (models.Task, error) {
	if t.ID == "" {
		return t, fmt.Errorf("task %w", ErrMissingID)
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return t, ErrEmptyTitle
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if !t.Status.IsValid() {
		return t, fmt.Errorf("%w: %q", models.ErrInvalidStatus, t.Status)
	}
	if t.Priority == "" {
		t.Priority = models.DefaultPriority
	}
	if !t.Priority.IsValid() {
		return t, fmt.Errorf("%w: %q", models.ErrInvalidPriority, t.Priority)
	}
	if t.AssigneeID != "" && s.userIndex(t.AssigneeID) < 0 {
		return t, fmt.Errorf("%w: %s", ErrUserNotFound, t.AssigneeID)
	}
	if t.ProjectID != "" && s.projectIndex(t.ProjectID) < 0 {
		return t, fmt.Errorf("%w: %s", ErrProjectNotFound, t.ProjectID)
	}
	if err := normalizeSubtasks(t.Subtasks); err != nil {
		return t, err
	}
	if err := checkAttachments(t.Attachments); err != nil {
		return t, err
	}
	t.Tags = models.NormalizeTags(t.Tags)
	return t, nil
}

// normalizeSubtasks trims titles in place and rejects missing, empty or
// repeated entries. Subtask ids are unique per task.
func normalizeSubtasks(subtasks []models.Subtask) error {
	seen := make(map[string]struct{}, len(subtasks))
	for i := range subtasks {
		st := &subtasks[i]
		if st.ID == "" {
			return fmt.Errorf("subtask %w", ErrMissingID)
		}
		if _, dup := seen[st.ID]; dup {
			return fmt.Errorf("%w: subtask %s", ErrDuplicateID, st.ID)
		}
		seen[st.ID] = struct{}{}
		st.Title = strings.TrimSpace(st.Title)
		if st.Title == "" {
			return fmt.Errorf("subtask %s: %w", st.ID, ErrEmptyTitle)
		}
	}
	return nil
}

// checkAttachments rejects missing or repeated attachment ids.
func checkAttachments(attachments []models.Attachment) error {
	seen := make(map[string]struct{}, len(attachments))
	for _, a := range attachments {
		if a.ID == "" {
			return fmt.Errorf("attachment %w", ErrMissingID)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: attachment %s", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

func (r Reducer) deleteTask(s State, a DeleteTask) (State, error) {
	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrTaskNotFound, a.TaskID)
	}
	s.tasks = slices.Delete(slices.Clone(s.tasks), i, i+1)
	s.version++
	return s, nil
}

func (r Reducer) addSubtask(s State, a AddSubtask) (State, error) {
	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrTaskNotFound, a.TaskID)
	}
	if a.Subtask.ID == "" {
		return s, fmt.Errorf("subtask %w", ErrMissingID)
	}
	title := strings.TrimSpace(a.Subtask.Title)
	if title == "" {
		return s, ErrEmptyTitle
	}

	t := s.tasks[i].Clone()
	if slices.ContainsFunc(t.Subtasks, func(st models.Subtask) bool { return st.ID == a.Subtask.ID }) {
		return s, fmt.Errorf("%w: subtask %s", ErrDuplicateID, a.Subtask.ID)
	}
	t.Subtasks = append(t.Subtasks, models.Subtask{ID: a.Subtask.ID, Title: title, Completed: a.Subtask.Completed})
	t.UpdatedAt = r.now()
	return s.withTask(i, t), nil
}

func (r Reducer) removeSubtask(s State, a RemoveSubtask) (State, error) {
	i := s.taskIndex(a.TaskID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrTaskNotFound, a.TaskID)
	}

	t := s.tasks[i].Clone()
	j := slices.IndexFunc(t.Subtasks, func(st models.Subtask) bool { return st.ID == a.SubtaskID })
	if j < 0 {
		return s, fmt.Errorf("%w: %s", ErrSubtaskNotFound, a.SubtaskID)
	}
	t.Subtasks = slices.Delete(t.Subtasks, j, j+1)
	t.UpdatedAt = r.now()
	return s.withTask(i, t), nil
}

// ============================================================================
// PROJECTS AND USERS
// ============================================================================

func (r Reducer) createProject(s State, a CreateProject) (State, error) {
	p := a.Project
	if p.ID == "" {
		return s, fmt.Errorf("project %w", ErrMissingID)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return s, ErrEmptyName
	}
	if s.projectIndex(p.ID) >= 0 {
		return s, fmt.Errorf("%w: project %s", ErrDuplicateID, p.ID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}

	s.projects = append(slices.Clip(s.projects), p)
	s.version++
	return s, nil
}

func (r Reducer) deleteProject(s State, a DeleteProject) (State, error) {
	i := s.projectIndex(a.ProjectID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrProjectNotFound, a.ProjectID)
	}
	for _, t := range s.tasks {
		if t.ProjectID == a.ProjectID {
			return s, fmt.Errorf("%w: %s", ErrProjectHasTasks, a.ProjectID)
		}
	}
	s.projects = slices.Delete(slices.Clone(s.projects), i, i+1)
	s.version++
	return s, nil
}

func (r Reducer) createUser(s State, a CreateUser) (State, error) {
	u := a.User
	if u.ID == "" {
		return s, fmt.Errorf("user %w", ErrMissingID)
	}
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return s, ErrEmptyName
	}
	if s.userIndex(u.ID) >= 0 {
		return s, fmt.Errorf("%w: user %s", ErrDuplicateID, u.ID)
	}
	if u.Avatar == "" {
		u.Avatar = models.Initials(u.Name)
	}

	s.users = append(slices.Clip(s.users), u)
	s.version++
	return s, nil
}

func (r Reducer) deleteUser(s State, a DeleteUser) (State, error) {
	i := s.userIndex(a.UserID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrUserNotFound, a.UserID)
	}

	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	for j := range tasks {
		if tasks[j].AssigneeID == a.UserID {
			tasks[j] = tasks[j].Clone()
			tasks[j].AssigneeID = ""
		}
	}

	s.tasks = tasks
	s.users = slices.Delete(slices.Clone(s.users), i, i+1)
	s.version++
	return s, nil
}

// load validates every record before replacing the state, so a bad snapshot
// leaves the workspace untouched.
func (r Reducer) load(s State, a Load) (State, error) {
	next := State{version: s.version + 1}

	for _, p := range a.Snapshot.Projects {
		var err error
		if next, err = r.createProject(next, CreateProject{Project: p}); err != nil {
			return s, fmt.Errorf("failed to load project %s: %w", p.ID, err)
		}
	}
	for _, u := range a.Snapshot.Users {
		var err error
		if next, err = r.createUser(next, CreateUser{User: u}); err != nil {
			return s, fmt.Errorf("failed to load user %s: %w", u.ID, err)
		}
	}
	for _, t := range a.Snapshot.Tasks {
		nt, err := r.normalizeTask(next, t.Clone())
		if err != nil {
			return s, fmt.Errorf("failed to load task %s: %w", t.ID, err)
		}
		if next.taskIndex(nt.ID) >= 0 {
			return s, fmt.Errorf("failed to load task %s: %w", t.ID, ErrDuplicateID)
		}
		next.tasks = append(next.tasks, nt)
	}

	// Bring the version back to exactly one step past s; the per-record
	// inserts above bumped it along the way.
	next.version = s.version + 1
	return next, nil
}

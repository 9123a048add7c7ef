package workspace

import "github.com/thenoetrevino/taskboard/internal/models"

// State is an immutable view of the workspace. Reducers never modify a State;
// they return a new one. Accessors hand out copies, so callers cannot reach
// back into the stored slices.
type State struct {
	tasks    []models.Task
	projects []models.Project
	users    []models.User
	version  uint64
}

// NewState builds a state from a snapshot. The snapshot is deep-copied.
func NewState(snap models.Snapshot) State {
	c := snap.Clone()
	return State{tasks: c.Tasks, projects: c.Projects, users: c.Users}
}

// Version increases by one with every change. A reducer that makes no change
// returns a state with the same version.
func (s State) Version() uint64 { return s.version }

// Tasks returns all tasks in insertion order.
func (s State) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Task looks a task up by id.
func (s State) Task(id string) (models.Task, bool) {
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

func (s State) Projects() []models.Project {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

func (s State) Project(id string) (models.Project, bool) {
	if i := s.projectIndex(id); i >= 0 {
		return s.projects[i], true
	}
	return models.Project{}, false
}

func (s State) Users() []models.User {
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s State) User(id string) (models.User, bool) {
	if i := s.userIndex(id); i >= 0 {
		return s.users[i], true
	}
	return models.User{}, false
}

// Snapshot exports the state as plain data.
func (s State) Snapshot() models.Snapshot {
	return models.Snapshot{Tasks: s.Tasks(), Projects: s.Projects(), Users: s.Users()}
}

func (s State) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) userIndex(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// withTask returns a copy of s with the task at index i replaced. The task
// slice is copied; untouched tasks are shared, which is safe because no
// reducer mutates a stored task in place.
func (s State) withTask(i int, t models.Task) State {
	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	tasks[i] = t
	s.tasks = tasks
	s.version++
	return s
}

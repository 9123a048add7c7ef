package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/models"
)

func TestFree_AllowsEverything(t *testing.T) {
	task := models.Task{ID: "1", Status: models.StatusDone}
	for _, to := range models.Statuses() {
		assert.NoError(t, Free{}.Allow(task, to), "free policy refused %s", to)
	}
}

func TestGuarded_AllowList(t *testing.T) {
	g := NewGuarded(map[models.Status][]models.Status{
		models.StatusDone: {models.StatusReview},
	}, false)

	done := models.Task{ID: "1", Status: models.StatusDone}
	require.NoError(t, g.Allow(done, models.StatusReview))

	err := g.Allow(done, models.StatusTodo)
	require.ErrorIs(t, err, ErrTransitionNotAllowed)
	assert.Contains(t, err.Error(), "done -> todo")

	// todo has no rule, so it is unrestricted
	todo := models.Task{ID: "2", Status: models.StatusTodo}
	assert.NoError(t, g.Allow(todo, models.StatusDone))
}

func TestGuarded_RequireSubtasksForDone(t *testing.T) {
	g := NewGuarded(nil, true)

	task := models.Task{
		ID:     "1",
		Status: models.StatusReview,
		Subtasks: []models.Subtask{
			{ID: "a", Completed: true},
			{ID: "b", Completed: false},
		},
	}
	require.ErrorIs(t, g.Allow(task, models.StatusDone), ErrIncompleteSubtasks)
	assert.NoError(t, g.Allow(task, models.StatusTodo))

	task.Subtasks[1].Completed = true
	assert.NoError(t, g.Allow(task, models.StatusDone))

	assert.NoError(t, g.Allow(models.Task{Status: models.StatusTodo}, models.StatusDone),
		"a task without subtasks is not held back")
}

func TestTargets(t *testing.T) {
	g := NewGuarded(map[models.Status][]models.Status{
		models.StatusTodo: {models.StatusInProgress},
	}, false)

	got := Targets(g, models.Task{Status: models.StatusTodo})
	assert.Equal(t, []models.Status{models.StatusInProgress}, got)

	got = Targets(Free{}, models.Task{Status: models.StatusReview})
	assert.Equal(t, []models.Status{models.StatusTodo, models.StatusInProgress, models.StatusDone}, got)
}

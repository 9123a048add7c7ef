package board

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
	"github.com/thenoetrevino/taskboard/internal/workflow"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// storeMover adapts a workspace.Store to Mover without the service layer.
type storeMover struct {
	store *workspace.Store
}

func (m storeMover) GetTask(_ context.Context, id string) (models.Task, error) {
	t, ok := m.store.State().Task(id)
	if !ok {
		return models.Task{}, workspace.ErrTaskNotFound
	}
	return t, nil
}

func (m storeMover) MoveTask(ctx context.Context, id string, to models.Status) (models.Task, error) {
	s, err := m.store.Dispatch(ctx, workspace.MoveTask{TaskID: id, To: to})
	if err != nil {
		return models.Task{}, err
	}
	t, _ := s.Task(id)
	return t, nil
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

// ============================================================================
// Columns
// ============================================================================

func TestColumns_OrderAndSorting(t *testing.T) {
	cols := Columns(testutil.Fixture10().Tasks)
	require.Len(t, cols, 4)

	assert.Equal(t, models.StatusTodo, cols[0].ID)
	assert.Equal(t, models.StatusInProgress, cols[1].ID)
	assert.Equal(t, models.StatusReview, cols[2].ID)
	assert.Equal(t, models.StatusDone, cols[3].ID)

	assert.Equal(t, []string{"1", "3", "2"}, ids(cols[0].Tasks))
	assert.Equal(t, []string{"4", "5", "6"}, ids(cols[1].Tasks))
	assert.Equal(t, []string{"8", "7"}, ids(cols[2].Tasks))
	assert.Equal(t, []string{"10", "9"}, ids(cols[3].Tasks))
}

func TestColumns_EveryTaskExactlyOnce(t *testing.T) {
	tasks := testutil.Fixture10().Tasks
	tasks = append(tasks, models.Task{ID: "x", Title: "Broken", Status: "archived", Priority: models.PriorityLow})

	seen := map[string]int{}
	for _, col := range Columns(tasks) {
		for _, task := range col.Tasks {
			seen[task.ID]++
		}
	}
	assert.Len(t, seen, len(tasks))
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s", id)
	}
}

func TestColumns_Empty(t *testing.T) {
	cols := Columns(nil)
	require.Len(t, cols, 4)
	for _, c := range cols {
		assert.Empty(t, c.Tasks)
	}
}

func TestSortTasks_DueDateThenTitle(t *testing.T) {
	early := testutil.FixedNow
	late := early.Add(time.Hour)
	tasks := []models.Task{
		{ID: "a", Title: "zeta", Priority: models.PriorityMedium},
		{ID: "b", Title: "Alpha", Priority: models.PriorityMedium},
		{ID: "c", Title: "late", Priority: models.PriorityMedium, DueDate: &late},
		{ID: "d", Title: "early", Priority: models.PriorityMedium, DueDate: &early},
		{ID: "e", Title: "urgent", Priority: models.PriorityHigh},
	}
	SortTasks(tasks)
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, ids(tasks))
}

func TestLocate(t *testing.T) {
	cols := Columns(testutil.Fixture10().Tasks)

	c, r := Locate(cols, "7")
	assert.Equal(t, 2, c)
	assert.Equal(t, 1, r)

	c, r = Locate(cols, "missing")
	assert.Equal(t, -1, c)
	assert.Equal(t, -1, r)
}

// ============================================================================
// Grouping
// ============================================================================

func TestGroupTasks(t *testing.T) {
	snap := testutil.Fixture10()
	names := NewNames(snap.Users, snap.Projects)

	t.Run("status keeps empty columns", func(t *testing.T) {
		groups := GroupTasks(snap.Tasks[:1], ByStatus, names)
		require.Len(t, groups, 4)
		assert.Len(t, groups[0].Tasks, 1)
		assert.Empty(t, groups[3].Tasks)
	})

	t.Run("priority", func(t *testing.T) {
		groups := GroupTasks(snap.Tasks, ByPriority, names)
		require.Len(t, groups, 3)
		assert.Equal(t, "high", groups[0].Key)
		assert.Equal(t, []string{"1", "4", "8"}, ids(groups[0].Tasks))
		assert.Len(t, groups[1].Tasks, 4)
		assert.Len(t, groups[2].Tasks, 3)
	})

	t.Run("assignee puts unassigned last", func(t *testing.T) {
		groups := GroupTasks(snap.Tasks, ByAssignee, names)
		require.Len(t, groups, 3)
		assert.Equal(t, "Ada Lovelace", groups[0].Title)
		assert.Equal(t, "Grace Hopper", groups[1].Title)
		assert.Equal(t, "Unassigned", groups[2].Title)
		assert.Equal(t, []string{"3"}, ids(groups[2].Tasks))
	})

	t.Run("project", func(t *testing.T) {
		groups := GroupTasks(snap.Tasks, ByProject, names)
		require.Len(t, groups, 2)
		assert.Equal(t, "Platform", groups[0].Title)
		assert.Equal(t, "Website", groups[1].Title)
	})

	t.Run("assignee with no tasks", func(t *testing.T) {
		groups := GroupTasks(nil, ByAssignee, names)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	})
}

func TestParseGroupBy(t *testing.T) {
	g, ok := ParseGroupBy("")
	assert.True(t, ok)
	assert.Equal(t, ByStatus, g)

	g, ok = ParseGroupBy("assignee")
	assert.True(t, ok)
	assert.Equal(t, ByAssignee, g)

	_, ok = ParseGroupBy("colour")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	snap := testutil.Fixture10()
	names := NewNames(snap.Users, snap.Projects)

	assert.Equal(t, "Ada Lovelace", names.User("u1"))
	assert.Equal(t, "ghost", names.User("ghost"))
	assert.Equal(t, "Unassigned", names.User(""))
	assert.Equal(t, "Website", names.Project("p1"))
	assert.Equal(t, "No project", names.Project(""))
}

// ============================================================================
// Transitions
// ============================================================================

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the task", func(t *testing.T) {
		m := storeMover{store: testutil.NewStore(t, testutil.Fixture10())}
		task, err := Apply(ctx, m, TransitionEvent{TaskID: "1", From: models.StatusTodo, To: models.StatusInProgress})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, task.Status)
	})

	t.Run("stale source column", func(t *testing.T) {
		m := storeMover{store: testutil.NewStore(t, testutil.Fixture10())}
		task, err := Apply(ctx, m, TransitionEvent{TaskID: "1", From: models.StatusReview, To: models.StatusDone})
		assert.ErrorIs(t, err, ErrStaleTransition)
		assert.Equal(t, models.StatusTodo, task.Status)
	})

	t.Run("same column is a no-op", func(t *testing.T) {
		store := testutil.NewStore(t, testutil.Fixture10())
		before := store.State().Version()
		_, err := Apply(ctx, storeMover{store: store}, TransitionEvent{TaskID: "1", To: models.StatusTodo})
		require.NoError(t, err)
		assert.Equal(t, before, store.State().Version())
	})

	t.Run("unknown task", func(t *testing.T) {
		m := storeMover{store: testutil.NewStore(t, testutil.Fixture10())}
		_, err := Apply(ctx, m, TransitionEvent{TaskID: "nope", To: models.StatusDone})
		assert.ErrorIs(t, err, workspace.ErrTaskNotFound)
	})

	t.Run("policy rejection", func(t *testing.T) {
		policy := workflow.NewGuarded(map[models.Status][]models.Status{
			models.StatusTodo: {models.StatusInProgress},
		}, false)
		store := testutil.NewStore(t, testutil.Fixture10(), workspace.WithPolicy(policy))
		_, err := Apply(ctx, storeMover{store: store}, TransitionEvent{TaskID: "1", To: models.StatusDone})
		assert.ErrorIs(t, err, workflow.ErrTransitionNotAllowed)
	})
}

func TestRun_DrainsSourceUntilClosed(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t, testutil.Fixture10())
	src := NewChanSource(4)

	require.NoError(t, src.Emit(ctx, TransitionEvent{TaskID: "1", To: models.StatusInProgress}))
	require.NoError(t, src.Emit(ctx, TransitionEvent{TaskID: "missing", To: models.StatusDone}))
	require.NoError(t, src.Emit(ctx, TransitionEvent{TaskID: "1", From: models.StatusInProgress, To: models.StatusReview}))
	src.Close()

	var mu sync.Mutex
	var results []error
	err := Run(ctx, src, storeMover{store: store}, func(_ TransitionEvent, _ models.Task, err error) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, err)
	})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.NoError(t, results[0])
	assert.ErrorIs(t, results[1], workspace.ErrTaskNotFound)
	assert.NoError(t, results[2])

	task, _ := store.State().Task("1")
	assert.Equal(t, models.StatusReview, task.Status)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := NewChanSource(0)
	store := testutil.NewStore(t, testutil.Fixture10())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, src, storeMover{store: store}, nil) }()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStep(t *testing.T) {
	task := models.Task{ID: "1", Status: models.StatusInProgress}

	ev, err := Step(task, 1)
	require.NoError(t, err)
	assert.Equal(t, TransitionEvent{TaskID: "1", From: models.StatusInProgress, To: models.StatusReview}, ev)

	ev, err = Step(task, -1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, ev.To)

	_, err = Step(models.Task{ID: "2", Status: models.StatusDone}, 1)
	assert.ErrorIs(t, err, models.ErrNoNextColumn)

	_, err = Step(models.Task{ID: "3", Status: models.StatusTodo}, -1)
	assert.ErrorIs(t, err, models.ErrNoPrevColumn)
}

// ============================================================================
// Rendering
// ============================================================================

func TestDueLabel(t *testing.T) {
	now := testutil.FixedNow
	due := now.Add(72 * time.Hour)
	past := now.Add(-72 * time.Hour)

	assert.Empty(t, DueLabel(models.Task{}, now))
	assert.Equal(t, "due 3 days from now", DueLabel(models.Task{DueDate: &due}, now))
	assert.Equal(t, "due 3 days ago", DueLabel(models.Task{DueDate: &past}, now))
}

func TestRenderList_PlainStyles(t *testing.T) {
	snap := testutil.Fixture10()
	opts := RenderOptions{
		Names:          NewNames(snap.Users, snap.Projects),
		Now:            testutil.FixedNow,
		SelectedColumn: -1,
		SelectedTask:   -1,
	}

	out := RenderList(GroupTasks(snap.Tasks, ByStatus, opts.Names), opts)
	assert.Contains(t, out, "[5] Build dashboard charts (in-progress, medium) @Ada Lovelace 1/3")
	assert.Contains(t, out, "[3] Set up CI pipeline (todo, medium)")
	assert.Equal(t, 1, strings.Count(out, "[10] "))
}

func TestVisibleRange(t *testing.T) {
	start, end := visibleRange(10, 0, true, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = visibleRange(10, 7, true, 3)
	assert.Equal(t, 5, start)
	assert.Equal(t, 8, end)

	start, end = visibleRange(10, 7, false, 3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

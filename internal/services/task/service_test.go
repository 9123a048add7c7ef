package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/filter"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
	"github.com/thenoetrevino/taskboard/internal/workflow"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type harness struct {
	svc   Service
	store *workspace.Store
	sub   *events.Subscription
}

func setup(t *testing.T, opts ...workspace.Option) harness {
	t.Helper()
	store := testutil.NewStore(t, testutil.Fixture10(), opts...)
	bus := events.NewBus(zerolog.Nop())
	t.Cleanup(bus.Close)
	return harness{
		svc:   NewService(store, bus),
		store: store,
		sub:   bus.Subscribe("", events.DefaultBuffer),
	}
}

func (h harness) nextEvent(t *testing.T) events.Event {
	t.Helper()
	select {
	case ev := <-h.sub.C:
		return ev
	case <-time.After(time.Second):
		t.Fatal("expected an event")
		return events.Event{}
	}
}

func (h harness) noEvent(t *testing.T) {
	t.Helper()
	select {
	case ev := <-h.sub.C:
		t.Fatalf("unexpected event %s", ev.Type)
	default:
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	return fields
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// TEST CASES - CREATE
// ============================================================================

func TestCreateTask(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	task, err := h.svc.CreateTask(ctx, CreateTaskRequest{
		Title:      "  Write release notes ",
		AssigneeID: "u1",
		ProjectID:  "p1",
		Tags:       []string{"Docs", "docs", "release"},
		Subtasks:   []string{"Draft", "", "Publish"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write release notes", task.Title)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, []string{"docs", "release"}, task.Tags)
	require.Len(t, task.Subtasks, 2)
	assert.Equal(t, "Draft", task.Subtasks[0].Title)
	assert.False(t, task.Subtasks[0].Completed)
	assert.Equal(t, testutil.FixedNow, task.CreatedAt)

	ev := h.nextEvent(t)
	assert.Equal(t, events.TaskCreated, ev.Type)
	assert.Equal(t, task.ID, ev.TaskID)
	assert.Equal(t, "p1", ev.ProjectID)

	assert.Len(t, h.store.State().Tasks(), 11)
}

func TestCreateTask_Validation(t *testing.T) {
	h := setup(t)

	_, err := h.svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:    " ",
		Status:   "archived",
		Priority: "urgent",
	})
	fields := fieldsOf(t, err)
	assert.ElementsMatch(t, []string{"title", "status", "priority"}, fields)

	long := make([]byte, maxTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = h.svc.CreateTask(context.Background(), CreateTaskRequest{Title: string(long)})
	assert.Equal(t, []string{"title"}, fieldsOf(t, err))

	h.noEvent(t)
	assert.Len(t, h.store.State().Tasks(), 10)
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	h := setup(t)

	_, err := h.svc.CreateTask(context.Background(), CreateTaskRequest{Title: "Orphan", AssigneeID: "ghost"})
	assert.ErrorIs(t, err, workspace.ErrUserNotFound)
	h.noEvent(t)
}

// ============================================================================
// TEST CASES - READ
// ============================================================================

func TestGetTask(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	task, err := h.svc.GetTask(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "Build dashboard charts", task.Title)

	_, err = h.svc.GetTask(ctx, "404")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = h.svc.GetTask(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidTaskID)
}

func TestListTasks(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	tasks, err := h.svc.ListTasks(ctx, filter.Filter{Assignee: filter.All, Status: "in-progress", Priority: filter.All})
	require.NoError(t, err)
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	assert.Equal(t, []string{"4", "5", "6"}, ids)

	all, err := h.svc.ListTasks(ctx, filter.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 10)

	_, err = h.svc.ListTasks(ctx, filter.Filter{Tags: []string{"infra/[ci"}})
	assert.ErrorIs(t, err, filter.ErrInvalidFilter)
}

// ============================================================================
// TEST CASES - MOVE
// ============================================================================

func TestMoveTask_TodoToDone(t *testing.T) {
	h := setup(t)

	task, err := h.svc.MoveTask(context.Background(), "1", models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)

	ev := h.nextEvent(t)
	assert.Equal(t, events.TaskMoved, ev.Type)
	assert.Equal(t, models.StatusTodo, ev.From)
	assert.Equal(t, models.StatusDone, ev.To)

	stored, _ := h.store.State().Task("1")
	assert.Equal(t, models.StatusDone, stored.Status)
}

func TestMoveTask_SameStatusIsNoop(t *testing.T) {
	h := setup(t)
	before := h.store.State().Version()

	task, err := h.svc.MoveTask(context.Background(), "4", models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, before, h.store.State().Version())
	h.noEvent(t)
}

func TestMoveTask_ConcurrentEventsBalance(t *testing.T) {
	h := setup(t)
	bus := events.NewBus(zerolog.Nop())
	t.Cleanup(bus.Close)
	svc := NewService(h.store, bus)
	sub := bus.Subscribe("", 1024)

	statuses := models.Statuses()
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				_, err := svc.MoveTask(context.Background(), "1", statuses[(g+i)%len(statuses)])
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	// Each status's net inflow must equal its change in occupancy, whatever
	// order the events arrived in.
	net := map[models.Status]int{}
	for {
		select {
		case ev := <-sub.C:
			require.Equal(t, events.TaskMoved, ev.Type)
			assert.NotEqual(t, ev.From, ev.To)
			net[ev.From]--
			net[ev.To]++
			continue
		default:
		}
		break
	}

	final, _ := h.store.State().Task("1")
	for _, st := range statuses {
		want := 0
		if st == models.StatusTodo {
			want--
		}
		if st == final.Status {
			want++
		}
		assert.Equal(t, want, net[st], "net flow for %s", st)
	}
}

func TestMoveTask_Errors(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	_, err := h.svc.MoveTask(ctx, "404", models.StatusDone)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = h.svc.MoveTask(ctx, "1", "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = h.svc.MoveTaskToNextColumn(ctx, "9")
	assert.ErrorIs(t, err, ErrAlreadyLastColumn)

	_, err = h.svc.MoveTaskToPrevColumn(ctx, "1")
	assert.ErrorIs(t, err, ErrAlreadyFirstColumn)

	h.noEvent(t)
}

func TestMoveTask_NeighbourColumns(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	task, err := h.svc.MoveTaskToNextColumn(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)

	task, err = h.svc.MoveTaskToPrevColumn(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReview, task.Status)
}

func TestMoveTask_GuardedPolicy(t *testing.T) {
	policy := workflow.NewGuarded(map[models.Status][]models.Status{
		models.StatusInProgress: {models.StatusReview, models.StatusTodo},
	}, true)
	h := setup(t, workspace.WithPolicy(policy))
	ctx := context.Background()

	task, err := h.svc.MoveTask(ctx, "5", models.StatusDone)
	assert.ErrorIs(t, err, workflow.ErrTransitionNotAllowed)
	assert.Equal(t, models.StatusInProgress, task.Status)

	_, err = h.svc.MoveTask(ctx, "7", models.StatusDone)
	assert.NoError(t, err, "7 has every subtask done")

	_, err = h.svc.MoveTask(ctx, "4", models.StatusReview)
	assert.NoError(t, err)
}

// ============================================================================
// TEST CASES - SUBTASKS
// ============================================================================

func TestToggleSubtask_DoesNotChangeStatus(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	_, err := h.svc.ToggleSubtask(ctx, "5", "5b")
	require.NoError(t, err)
	task, err := h.svc.ToggleSubtask(ctx, "5", "5c")
	require.NoError(t, err)

	assert.Equal(t, models.SubtaskProgress{Done: 3, Total: 3}, task.Progress())
	assert.Equal(t, models.StatusInProgress, task.Status)

	assert.Equal(t, events.SubtaskToggled, h.nextEvent(t).Type)
	assert.Equal(t, events.SubtaskToggled, h.nextEvent(t).Type)

	_, err = h.svc.ToggleSubtask(ctx, "5", "nope")
	assert.ErrorIs(t, err, ErrSubtaskNotFound)
}

func TestToggleNextSubtask(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	task, err := h.svc.ToggleNextSubtask(ctx, "5")
	require.NoError(t, err)
	assert.True(t, task.Subtasks[1].Completed)
	assert.False(t, task.Subtasks[2].Completed)

	_, err = h.svc.ToggleNextSubtask(ctx, "7")
	assert.ErrorIs(t, err, ErrNoOpenSubtasks)
}

func TestAddAndRemoveSubtask(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	task, err := h.svc.AddSubtask(ctx, "1", "Wireframe")
	require.NoError(t, err)
	require.Len(t, task.Subtasks, 1)
	id := task.Subtasks[0].ID

	task, err = h.svc.RemoveSubtask(ctx, "1", id)
	require.NoError(t, err)
	assert.Empty(t, task.Subtasks)

	_, err = h.svc.AddSubtask(ctx, "1", "")
	assert.Equal(t, []string{"title"}, fieldsOf(t, err))
}

// ============================================================================
// TEST CASES - UPDATE
// ============================================================================

func TestUpdateTask(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	due := testutil.FixedNow.Add(24 * time.Hour)

	task, err := h.svc.UpdateTask(ctx, UpdateTaskRequest{
		TaskID:   "2",
		Title:    ptr("Write API reference"),
		Priority: ptr(models.PriorityHigh),
		DueDate:  &due,
		Tags:     ptr([]string{"Docs", "api"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Write API reference", task.Title)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, []string{"api", "docs"}, task.Tags)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Equal(t, models.StatusTodo, task.Status)

	assert.Equal(t, events.TaskUpdated, h.nextEvent(t).Type)

	task, err = h.svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: "2", ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
}

func TestUpdateTask_Errors(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	_, err := h.svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: "2"})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = h.svc.UpdateTask(ctx, UpdateTaskRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrInvalidTaskID)

	_, err = h.svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: "2", Title: ptr(""), Priority: ptr(models.Priority("urgent"))})
	assert.ElementsMatch(t, []string{"title", "priority"}, fieldsOf(t, err))

	_, err = h.svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: "404", Title: ptr("x")})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	h.noEvent(t)
}

// ============================================================================
// TEST CASES - DELETE
// ============================================================================

func TestDeleteTask(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	require.NoError(t, h.svc.DeleteTask(ctx, "3"))
	_, ok := h.store.State().Task("3")
	assert.False(t, ok)

	ev := h.nextEvent(t)
	assert.Equal(t, events.TaskDeleted, ev.Type)
	assert.Equal(t, "p2", ev.ProjectID)

	assert.ErrorIs(t, h.svc.DeleteTask(ctx, "3"), ErrTaskNotFound)
	assert.ErrorIs(t, h.svc.DeleteTask(ctx, ""), ErrInvalidTaskID)
}

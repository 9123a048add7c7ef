package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/models"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
	"github.com/thenoetrevino/taskboard/internal/testutil"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

func TestNew(t *testing.T) {
	app := New(testutil.NewStore(t, testutil.Fixture10()))

	assert.NotNil(t, app.TaskService)
	assert.NotNil(t, app.ProjectService)
	assert.NotNil(t, app.UserService)
	assert.NotNil(t, app.Bus())
	assert.NotNil(t, app.Config())
	assert.Equal(t, "Ada Lovelace", app.Names().User("u1"))
	require.NoError(t, app.Close())
}

func TestServicesShareStoreAndBus(t *testing.T) {
	app := New(testutil.NewStore(t, testutil.Fixture10()))
	defer func() { _ = app.Close() }()

	sub := app.Bus().Subscribe("p1", 8)
	ctx := context.Background()

	created, err := app.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{Title: "Wire app", ProjectID: "p1"})
	require.NoError(t, err)

	ev := <-sub.C
	assert.Equal(t, created.ID, ev.TaskID)

	stats, err := app.ProjectService.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := New(testutil.NewStore(t, testutil.Fixture10()))
	defer func() { _ = src.Close() }()

	dst := New(workspace.NewStore())
	defer func() { _ = dst.Close() }()

	require.NoError(t, dst.Import(ctx, src.Export()))
	assert.Equal(t, src.Export(), dst.Export())

	bad := src.Export()
	bad.Tasks[0].Status = "archived"
	err := dst.Import(ctx, bad)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
	assert.Len(t, dst.Export().Tasks, 10)
}

func TestClose_ReleasesRepository(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	app := New(workspace.NewStore(), WithRepository(repo))
	require.NoError(t, app.Close())
}

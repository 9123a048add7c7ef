package transfer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/clitest"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := clitest.New(t, testutil.Fixture10())
	exported := clitest.Run(t, src, ExportCmd())
	require.NoError(t, exported.Err)
	assert.True(t, strings.HasPrefix(exported.Stdout, "{\n  \"tasks\""))

	dst := clitest.New(t, models.Snapshot{})
	res := clitest.RunWithInput(t, dst, ImportCmd(), strings.NewReader(exported.Stdout))
	require.NoError(t, res.Err)
	assert.Equal(t, "✓ Imported 10 tasks, 2 projects and 2 users\n", res.Stdout)

	again := clitest.Run(t, dst, ExportCmd())
	require.NoError(t, again.Err)
	assert.JSONEq(t, exported.Stdout, again.Stdout)
}

func TestExportToFile(t *testing.T) {
	c := clitest.New(t, testutil.Fixture10())
	path := filepath.Join(t.TempDir(), "backup.json")

	res := clitest.Run(t, c, ExportCmd(), "--output", path, "--json")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, `"tasks":10`)

	dst := clitest.New(t, models.Snapshot{})
	res = clitest.Run(t, dst, ImportCmd(), path)
	require.NoError(t, res.Err)
	assert.Len(t, dst.App.Store().State().Tasks(), 10)
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		exit  int
	}{
		{name: "malformed json", input: `{"tasks": [`, exit: cli.ExitDataErr},
		{name: "wrong types", input: `{"tasks": "nope"}`, exit: cli.ExitDataErr},
		{name: "empty input", input: "", exit: cli.ExitUsage},
		{name: "duplicate ids", input: `{"tasks": [{"id": "a", "title": "x"}, {"id": "a", "title": "y"}]}`, exit: cli.ExitValidation},
		{name: "truncated array", input: `{"tasks": [{"id": "a", "title": "x"}`, exit: cli.ExitDataErr},
		{name: "repeated subtask ids", input: `{"tasks": [{"id": "a", "title": "x", "subtasks": [{"id": "s", "title": "one"}, {"id": "s", "title": ""}]}]}`, exit: cli.ExitValidation},
		{name: "unknown assignee", input: `{"tasks": [{"id": "a", "title": "x", "assignee_id": "ghost"}]}`, exit: cli.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clitest.New(t, testutil.Fixture10())
			res := clitest.RunWithInput(t, c, ImportCmd(), strings.NewReader(tt.input))
			require.Error(t, res.Err)
			assert.Equal(t, tt.exit, cli.ExitCode(res.Err))
			assert.Len(t, c.App.Store().State().Tasks(), 10, "failed import must leave the workspace untouched")
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	c := clitest.New(t, testutil.Fixture10())
	res := clitest.Run(t, c, ImportCmd(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, cli.ExitError, cli.ExitCode(res.Err))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("x")))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	assert.False(t, isTerminal(r))
}

func TestDecodeSnapshot_Truncated(t *testing.T) {
	_, err := decodeSnapshot(strings.NewReader(`{"tasks": [`))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, cli.ExitDataErr, cli.ExitCode(err))
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/cli"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes one invocation against dir, closing everything it opened.
func run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	root, sess := newRootCmd()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--db", filepath.Join(dir, "taskboard.db")}, args...))

	err := root.ExecuteContext(context.Background())
	require.NoError(t, sess.close())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("TASKBOARD_CONFIG", filepath.Join(dir, "missing.yaml"))
	t.Setenv("TASKBOARD_DB", "")
	t.Setenv("TASKBOARD_LOG_LEVEL", "")
	t.Setenv("TASKBOARD_WORKFLOW", "")
	t.Chdir(dir)
	return dir
}

func TestWorkspacePersistsAcrossInvocations(t *testing.T) {
	dir := isolate(t)

	res := run(t, dir, "user", "create", "--name", "Ada Lovelace", "--quiet")
	require.NoError(t, res.err)
	userID := strings.TrimSpace(res.stdout)
	require.NotEmpty(t, userID)

	res = run(t, dir, "task", "create", "--title", "Write docs", "--assignee", userID, "--quiet")
	require.NoError(t, res.err)
	taskID := strings.TrimSpace(res.stdout)

	res = run(t, dir, "task", "move", taskID, "next")
	require.NoError(t, res.err)

	res = run(t, dir, "task", "list", "--status", "in-progress", "--json")
	require.NoError(t, res.err)

	var out struct {
		Data []struct {
			ID         string `json:"id"`
			AssigneeID string `json:"assignee_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, taskID, out.Data[0].ID)
	assert.Equal(t, userID, out.Data[0].AssigneeID)
}

func TestGuardedWorkflowFromConfigFile(t *testing.T) {
	dir := isolate(t)

	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, `
[workflow]
mode = "guarded"

[workflow.transitions]
todo = ["in-progress"]
`)

	res := run(t, dir, "--config", configPath, "task", "create", "--title", "Guarded", "--quiet")
	require.NoError(t, res.err)
	taskID := strings.TrimSpace(res.stdout)

	res = run(t, dir, "--config", configPath, "task", "move", taskID, "done")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(res.err))
	assert.Contains(t, res.stderr, "not allowed")
}

func TestInvalidConfiguration(t *testing.T) {
	dir := isolate(t)

	res := run(t, dir, "--log-level", "loud", "board")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(res.err))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	dir := isolate(t)

	res := run(t, dir, "--no-such-flag")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
}

// Package clitest runs cobra commands against an in-memory workspace.
package clitest

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// Result holds what a command wrote.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// New returns a CLI over a store seeded with snap and a fixed clock.
func New(t *testing.T, snap models.Snapshot, opts ...workspace.Option) *cli.CLI {
	t.Helper()
	a := app.New(testutil.NewStore(t, snap, opts...))
	t.Cleanup(func() { _ = a.Close() })

	c := cli.New(a)
	c.Now = func() time.Time { return testutil.FixedNow }
	return c
}

// Run executes cmd with args under c.
func Run(t *testing.T, c *cli.CLI, cmd *cobra.Command, args ...string) Result {
	t.Helper()
	return RunWithInput(t, c, cmd, nil, args...)
}

// RunWithInput executes cmd with args, feeding in as stdin.
func RunWithInput(t *testing.T, c *cli.CLI, cmd *cobra.Command, in io.Reader, args ...string) Result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if in != nil {
		cmd.SetIn(in)
	}
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(cli.WithCLI(context.Background(), c))
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// Package transfer implements the `taskboard export` and `taskboard import`
// commands, which move a whole workspace as one JSON snapshot.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Summary reports how much a transfer moved.
type Summary struct {
	File     string `json:"file,omitempty"`
	Tasks    int    `json:"tasks"`
	Projects int    `json:"projects"`
	Users    int    `json:"users"`
}

func summarize(file string, snap models.Snapshot) Summary {
	return Summary{File: file, Tasks: len(snap.Tasks), Projects: len(snap.Projects), Users: len(snap.Users)}
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workspace as a JSON snapshot",
		Long: `Write the workspace as a JSON snapshot. Without --output the snapshot
goes to stdout as-is, ready to be piped into import.

Examples:
  taskboard export > backup.json
  taskboard export --output=backup.json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runExport),
	}
	cli.AddFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runExport(_ context.Context, r *handler.Request) error {
	snap := r.CLI.App.Export()
	path, _ := r.GetCmd().Flags().GetString("output")

	if path == "" {
		return writeSnapshot(r.GetCmd().OutOrStdout(), snap)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeSnapshot(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	sum := summarize(path, snap)
	return r.Out.Success(sum, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Exported %d tasks, %d projects and %d users to %s\n",
			sum.Tasks, sum.Projects, sum.Users, path)
		return err
	})
}

func writeSnapshot(w io.Writer, snap models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Replace the workspace with a JSON snapshot",
		Long: `Replace the workspace with a JSON snapshot read from a file or stdin.
The snapshot is checked as a whole; if any record is invalid nothing changes.

Examples:
  taskboard import backup.json
  taskboard export | ssh host taskboard import -
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(runImport),
	}
	cli.AddFlags(cmd)
	return cmd
}

func runImport(ctx context.Context, r *handler.Request) error {
	source := "-"
	if len(r.Args) == 1 {
		source = r.Args[0]
	}

	var in io.Reader
	if source == "-" {
		in = r.GetCmd().InOrStdin()
		if isTerminal(in) {
			return cli.Usagef("refusing to read a snapshot from an interactive terminal; pass a file or pipe one in")
		}
	} else {
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", source, err)
		}
		defer f.Close()
		in = f
	}

	snap, err := decodeSnapshot(in)
	if err != nil {
		return err
	}
	if err := r.CLI.App.Import(ctx, snap); err != nil {
		return err
	}

	file := ""
	if source != "-" {
		file = source
	}
	sum := summarize(file, snap)
	return r.Out.Success(sum, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Imported %d tasks, %d projects and %d users\n",
			sum.Tasks, sum.Projects, sum.Users)
		return err
	})
}

func decodeSnapshot(in io.Reader) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.NewDecoder(in).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return snap, cli.Usagef("no snapshot on input")
		}
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

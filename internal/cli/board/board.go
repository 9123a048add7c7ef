// Package board implements the `taskboard board` command.
package board

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/filter"
)

// BoardCmd returns the board command, a static print of the kanban columns
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the board with one column per status",
		Long: `Print the board with one column per status.

Examples:
  taskboard board
  taskboard board --project=<project-id> --width=30
  taskboard board --json | jq '.data[] | {id, count: (.tasks | length)}'
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runBoard),
	}
	cli.AddFlags(cmd)

	cmd.Flags().String("project", filter.All, "Project ID")
	cmd.Flags().String("assignee", filter.All, "Assignee user ID")
	cmd.Flags().Int("width", 0, "Column width (default from config)")
	cmd.Flags().Int("max-cards", 0, "Cards shown per column, 0 for all")

	return cmd
}

func runBoard(ctx context.Context, r *handler.Request) error {
	flags, c := r.GetCmd().Flags(), r.CLI

	assignee, _ := flags.GetString("assignee")
	f, err := filter.Parse(assignee, filter.All, filter.All)
	if err != nil {
		return err
	}
	f.Project, _ = flags.GetString("project")

	width, _ := flags.GetInt("width")
	if width < 0 {
		return cli.Usagef("--width must not be negative")
	}
	maxCards, _ := flags.GetInt("max-cards")
	if maxCards < 0 {
		return cli.Usagef("--max-cards must not be negative")
	}

	tasks, err := c.App.TaskService.ListTasks(ctx, f)
	if err != nil {
		return err
	}
	cols := board.Columns(tasks)

	return r.Out.Success(cols, func(w io.Writer) error {
		cfg := c.App.Config()
		if width == 0 {
			width = cfg.Board.ColumnWidth
		}
		opts := board.RenderOptions{
			Styles:         board.NewStyles(cfg.ColorScheme, width),
			Names:          c.App.Names(),
			Now:            c.Clock(),
			SelectedColumn: -1,
			SelectedTask:   -1,
			MaxCards:       maxCards,
		}
		_, err := fmt.Fprintln(w, board.RenderBoard(cols, opts))
		return err
	})
}

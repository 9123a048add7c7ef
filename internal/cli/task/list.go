package task

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

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks matching every given criterion. Each criterion defaults to "all".

Examples:
  taskboard task list --status=in-progress
  taskboard task list --assignee=<user-id> --priority=high
  taskboard task list --tag='infra/**' --group-by=assignee
  taskboard task list --search="login" --json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runList),
	}

	cmd.Flags().String("assignee", filter.All, "Assignee user ID")
	cmd.Flags().String("status", filter.All, "Status: todo, in-progress, review, done")
	cmd.Flags().String("priority", filter.All, "Priority: high, medium, low")
	cmd.Flags().String("project", filter.All, "Project ID")
	cmd.Flags().StringSlice("tag", nil, "Tag glob pattern, e.g. 'infra/*' (repeatable)")
	cmd.Flags().String("search", "", "Fuzzy search over titles; results are ranked by relevance")
	cmd.Flags().String("group-by", string(board.ByStatus), "Group by: status, priority, assignee, project")

	return cmd
}

func runList(ctx context.Context, r *handler.Request) error {
	cmd, c := r.GetCmd(), r.CLI

	assignee, _ := cmd.Flags().GetString("assignee")
	status, _ := cmd.Flags().GetString("status")
	priority, _ := cmd.Flags().GetString("priority")
	f, err := filter.Parse(assignee, status, priority)
	if err != nil {
		return err
	}
	f.Project, _ = cmd.Flags().GetString("project")
	f.Tags, _ = cmd.Flags().GetStringSlice("tag")
	f.Query, _ = cmd.Flags().GetString("search")

	rawGroup, _ := cmd.Flags().GetString("group-by")
	by, ok := board.ParseGroupBy(rawGroup)
	if !ok {
		return cli.Usagef("invalid --group-by %q (must be: status, priority, assignee, project)", rawGroup)
	}

	tasks, err := c.App.TaskService.ListTasks(ctx, f)
	if err != nil {
		return err
	}

	return r.Out.Success(tasks, func(w io.Writer) error {
		opts := renderOptions(c)
		if len(tasks) == 0 {
			_, err := fmt.Fprintf(w, "No tasks match %s\n", f)
			return err
		}
		// ranked results keep their order unless a grouping was asked for
		if f.Query != "" && !cmd.Flags().Changed("group-by") {
			for _, t := range tasks {
				if _, err := fmt.Fprintln(w, board.ListLine(t, opts)); err != nil {
					return err
				}
			}
			return nil
		}
		_, err := fmt.Fprint(w, board.RenderList(board.GroupTasks(tasks, by, c.App.Names()), opts))
		return err
	})
}

func renderOptions(c *cli.CLI) board.RenderOptions {
	cfg := c.App.Config()
	return board.RenderOptions{
		Styles:         board.NewStyles(cfg.ColorScheme, cfg.Board.ColumnWidth),
		Names:          c.App.Names(),
		Now:            c.Clock(),
		SelectedColumn: -1,
		SelectedTask:   -1,
	}
}

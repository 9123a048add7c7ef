package task

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update task fields",
		Long: `Update one or more task fields. Only the flags you pass are changed.
Use "task move" to change the status.

Examples:
  taskboard task update 42 --title="New title"
  taskboard task update 42 --priority=high --due=tomorrow
  taskboard task update 42 --assignee="" --clear-due
  taskboard task update 42 --tag=backend,api
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(runUpdate),
	}

	addIDFlag(cmd)
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (markdown)")
	cmd.Flags().String("priority", "", "New priority: high, medium, low")
	cmd.Flags().String("assignee", "", `Assignee user ID ("" to unassign)`)
	cmd.Flags().String("project", "", `Project ID ("" to detach)`)
	cmd.Flags().String("due", "", "Due date: YYYY-MM-DD, today, tomorrow or +<days>d")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().StringSlice("tag", nil, "Replace tags (comma separated)")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")

	return cmd
}

func runUpdate(ctx context.Context, r *handler.Request) error {
	cmd := r.GetCmd()
	id, _, err := taskID(cmd, r.Args)
	if err != nil {
		return err
	}

	p := r.Flags()
	req := taskservice.UpdateTaskRequest{
		TaskID:      id,
		Title:       p.String("title"),
		Description: p.String("description"),
		AssigneeID:  p.String("assignee"),
		ProjectID:   p.String("project"),
		Tags:        p.Tags("tag"),
	}
	req.ClearDueDate, _ = cmd.Flags().GetBool("clear-due")

	if p.Changed("priority") {
		priority, err := p.Priority("priority")
		if err != nil {
			return err
		}
		req.Priority = &priority
	}
	if req.DueDate, err = p.Due("due"); err != nil {
		return err
	}

	task, err := r.CLI.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		if errors.Is(err, taskservice.ErrEmptyPatch) {
			return cli.Usagef("nothing to update: pass at least one of --title, --description, --priority, --assignee, --project, --due, --clear-due, --tag")
		}
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Updated task %s\n", summary(task))
		return err
	})
}

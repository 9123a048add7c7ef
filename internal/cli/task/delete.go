package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli/handler"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(runDelete),
	}
	addIDFlag(cmd)
	return cmd
}

func runDelete(ctx context.Context, r *handler.Request) error {
	id, _, err := taskID(r.GetCmd(), r.Args)
	if err != nil {
		return err
	}

	task, err := r.CLI.App.TaskService.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if err := r.CLI.App.TaskService.DeleteTask(ctx, id); err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Deleted task %s\n", summary(task))
		return err
	})
}

package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ToggleCmd returns the task toggle subcommand
func ToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id> [subtask-id]",
		Short: "Toggle a subtask's completion",
		Long: `Flip a subtask between done and not done. Without a subtask ID the first
incomplete subtask is completed. The task's own status never changes.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: handler.Command(runToggle),
	}
	return cmd
}

func runToggle(ctx context.Context, r *handler.Request) error {
	svc := r.CLI.App.TaskService
	id := r.Args[0]

	var task models.Task
	var err error
	if len(r.Args) == 2 {
		task, err = svc.ToggleSubtask(ctx, id, r.Args[1])
	} else {
		task, err = svc.ToggleNextSubtask(ctx, id)
	}
	if err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		p := task.Progress()
		_, err := fmt.Fprintf(w, "✓ Task %s subtasks: %d/%d done\n", task.ID, p.Done, p.Total)
		return err
	})
}

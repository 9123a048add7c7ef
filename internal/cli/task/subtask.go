package task

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli/handler"
)

// SubtaskCmd returns the task subtask parent command
func SubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage a task's checklist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <task-id> <title...>",
		Short: "Append a subtask",
		Args:  cobra.MinimumNArgs(2),
		RunE:  handler.Command(runSubtaskAdd),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <task-id> <subtask-id>",
		Short: "Remove a subtask",
		Args:  cobra.ExactArgs(2),
		RunE:  handler.Command(runSubtaskRemove),
	})

	return cmd
}

func runSubtaskAdd(ctx context.Context, r *handler.Request) error {
	title := strings.Join(r.Args[1:], " ")
	task, err := r.CLI.App.TaskService.AddSubtask(ctx, r.Args[0], title)
	if err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		added := task.Subtasks[len(task.Subtasks)-1]
		_, err := fmt.Fprintf(w, "✓ Added subtask %s to task %s: %s\n", added.ID, task.ID, added.Title)
		return err
	})
}

func runSubtaskRemove(ctx context.Context, r *handler.Request) error {
	task, err := r.CLI.App.TaskService.RemoveSubtask(ctx, r.Args[0], r.Args[1])
	if err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Removed subtask %s from task %s\n", r.Args[1], task.ID)
		return err
	})
}

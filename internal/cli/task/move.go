package task

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id] <status|next|prev>",
		Short: "Move a task to another column",
		Long: `Move a task to another column by direction or status name.
Moving a task onto the column it is already in succeeds without changes.

Examples:
  # Move to next column
  taskboard task move 42 next

  # Move to a specific column (case-insensitive)
  taskboard task move 42 "In Progress"
  taskboard task move 42 done

  # Refuse the move if the task was moved by someone else in the meantime
  taskboard task move 42 done --from=review
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: handler.Command(runMove),
	}

	addIDFlag(cmd)
	cmd.Flags().String("from", "", "Expected current status; the move fails if the task is elsewhere")

	return cmd
}

func runMove(ctx context.Context, r *handler.Request) error {
	cmd := r.GetCmd()
	id, rest, err := taskID(cmd, r.Args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return cli.Usagef("target is required: %s <id> <status|next|prev>", cmd.CommandPath())
	}

	svc := r.CLI.App.TaskService
	current, err := svc.GetTask(ctx, id)
	if err != nil {
		return err
	}

	ev := board.TransitionEvent{TaskID: id}
	switch target := strings.ToLower(strings.TrimSpace(rest[0])); target {
	case "next":
		if ev, err = board.Step(current, 1); err != nil {
			return err
		}
	case "prev", "previous":
		if ev, err = board.Step(current, -1); err != nil {
			return err
		}
	default:
		if ev.To, err = models.ParseStatus(target); err != nil {
			return err
		}
	}

	p := r.Flags()
	if ev.From, err = p.Status("from"); err != nil {
		return err
	}

	task, err := board.Apply(ctx, svc, ev)
	if err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		if task.Status == current.Status {
			_, err := fmt.Fprintf(w, "✓ Task %s is already in %s\n", task.ID, task.Status.Label())
			return err
		}
		_, err := fmt.Fprintf(w, "✓ Moved task %s: %s → %s\n", task.ID, current.Status.Label(), task.Status.Label())
		return err
	})
}

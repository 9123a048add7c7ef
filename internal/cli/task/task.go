// Package task implements the `taskboard task` commands.
package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cli.AddFlags(cmd)

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ToggleCmd())
	cmd.AddCommand(SubtaskCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// taskID reads the task id from --id or else the first positional argument,
// and returns the remaining arguments.
func taskID(cmd *cobra.Command, args []string) (string, []string, error) {
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		return id, args, nil
	}
	if len(args) > 0 {
		return args[0], args[1:], nil
	}
	return "", nil, cli.Usagef("task ID is required: %s <id> or --id=<id>", cmd.CommandPath())
}

func addIDFlag(cmd *cobra.Command) {
	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
}

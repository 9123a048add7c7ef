package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/models"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task with specified attributes.

Examples:
  # Simple task (human-readable output)
  taskboard task create --title="Fix bug"

  # Full example
  taskboard task create --title="Ship v2" --priority=high --status=in-progress \
    --assignee=<user-id> --project=<project-id> --due=+7d \
    --tag=release --subtask="Changelog" --subtask="Tag build"

  # Quiet mode for bash capture
  TASK_ID=$(taskboard task create --title="Fix bug" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runCreate),
	}

	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().String("status", "", "Initial status: todo, in-progress, review, done (default todo)")
	cmd.Flags().String("priority", "", "Priority: high, medium, low (default medium)")
	cmd.Flags().String("assignee", "", "Assignee user ID")
	cmd.Flags().String("project", "", "Project ID")
	cmd.Flags().String("due", "", "Due date: YYYY-MM-DD, today, tomorrow or +<days>d")
	cmd.Flags().StringSlice("tag", nil, "Tag (repeatable, comma separated)")
	cmd.Flags().StringArray("subtask", nil, "Subtask title (repeatable)")

	return cmd
}

func runCreate(ctx context.Context, r *handler.Request) error {
	cmd, c := r.GetCmd(), r.CLI
	p := r.Flags()

	status, err := p.Status("status")
	if err != nil {
		return err
	}
	priority, err := p.Priority("priority")
	if err != nil {
		return err
	}
	due, err := p.Due("due")
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	assignee, _ := cmd.Flags().GetString("assignee")
	project, _ := cmd.Flags().GetString("project")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	subtasks, _ := cmd.Flags().GetStringArray("subtask")

	if project == "" {
		project = c.App.Config().Board.DefaultProject
	}

	task, err := c.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  assignee,
		ProjectID:   project,
		DueDate:     due,
		Tags:        tags,
		Subtasks:    subtasks,
	})
	if err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Created task %s: %s (%s, %s)\n", task.ID, task.Title, task.Status, task.Priority)
		return err
	})
}

// summary is the one-line form used after writes.
func summary(t models.Task) string {
	return fmt.Sprintf("%s: %s [%s]", t.ID, t.Title, t.Status)
}

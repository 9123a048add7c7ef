package task

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display all details of a task including description, subtasks, tags and attachments.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(runShow),
	}
	addIDFlag(cmd)
	return cmd
}

func runShow(ctx context.Context, r *handler.Request) error {
	id, _, err := taskID(r.GetCmd(), r.Args)
	if err != nil {
		return err
	}

	task, err := r.CLI.App.TaskService.GetTask(ctx, id)
	if err != nil {
		return err
	}

	return r.Out.Success(task, func(w io.Writer) error {
		names := r.CLI.App.Names()
		_, err := fmt.Fprintln(w, styles.RenderCard(renderDetail(task, names, r.CLI.Clock(), isTerminal(w))))
		return err
	})
}

func renderDetail(t models.Task, names board.Names, now time.Time, markdown bool) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(t.ID))
	b.WriteString("\n\n")

	b.WriteString(styles.Field("Status", t.Status.Label()) + "\n")
	b.WriteString(styles.Field("Priority", string(t.Priority)) + "\n")
	b.WriteString(styles.Field("Assignee", names.User(t.AssigneeID)) + "\n")
	b.WriteString(styles.Field("Project", names.Project(t.ProjectID)) + "\n")
	if due := board.DueLabel(t, now); due != "" {
		if t.IsOverdue(now) {
			due = styles.OverdueStyle.Render(due + " (overdue)")
		}
		b.WriteString(styles.Field("Due", due) + "\n")
	}
	if len(t.Tags) > 0 {
		b.WriteString(styles.Field("Tags", strings.Join(t.Tags, ", ")) + "\n")
	}

	if strings.TrimSpace(t.Description) != "" {
		b.WriteString(styles.SectionStyle.Render("Description") + "\n")
		if markdown {
			b.WriteString(board.RenderDescription(t.Description, styles.CardWidth-6))
		} else {
			b.WriteString(t.Description)
		}
		b.WriteString("\n")
	}

	if len(t.Subtasks) > 0 {
		p := t.Progress()
		b.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Subtasks (%d/%d)", p.Done, p.Total)) + "\n")
		for _, st := range t.Subtasks {
			mark := "[ ]"
			if st.Completed {
				mark = "[x]"
			}
			fmt.Fprintf(&b, "%s %s  %s\n", mark, st.Title, styles.SubtitleStyle.Render(st.ID))
		}
	}

	if len(t.Attachments) > 0 {
		b.WriteString(styles.SectionStyle.Render("Attachments") + "\n")
		for _, a := range t.Attachments {
			fmt.Fprintf(&b, "• %s  %s\n", a.Name, styles.SubtitleStyle.Render(a.URL))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Package project implements the `taskboard project` commands.
package project

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
	projectservice "github.com/thenoetrevino/taskboard/internal/services/project"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cli.AddFlags(cmd)

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project.

Examples:
  taskboard project create --name="Website"
  PROJECT_ID=$(taskboard project create --name="Website" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runCreate),
	}
	cmd.Flags().String("name", "", "Project name (required)")
	cmd.Flags().String("description", "", "Project description")
	return cmd
}

func runCreate(ctx context.Context, r *handler.Request) error {
	name, _ := r.GetCmd().Flags().GetString("name")
	description, _ := r.GetCmd().Flags().GetString("description")

	p, err := r.CLI.App.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}

	return r.Out.Success(p, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Created project %s: %s\n", p.ID, p.Name)
		return err
	})
}

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runList),
	}
}

func runList(ctx context.Context, r *handler.Request) error {
	projects, err := r.CLI.App.ProjectService.ListProjects(ctx)
	if err != nil {
		return err
	}

	return r.Out.Success(projects, func(w io.Writer) error {
		if len(projects) == 0 {
			_, err := fmt.Fprintln(w, "No projects yet. Create one with: taskboard project create --name=<name>")
			return err
		}
		for _, p := range projects {
			stats, err := r.CLI.App.ProjectService.Stats(ctx, p.ID)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s  %s  %s", p.ID, styles.TitleStyle.Render(p.Name),
				styles.SubtitleStyle.Render(fmt.Sprintf("(%d tasks)", stats.Total)))
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// projectDetail is the JSON shape of project show.
type projectDetail struct {
	models.Project
	Stats models.ProjectStats `json:"stats"`
}

func (d projectDetail) GetID() string { return d.ID }

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project and its task counts per status",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runShow),
	}
}

func runShow(ctx context.Context, r *handler.Request) error {
	svc := r.CLI.App.ProjectService
	p, err := svc.GetProject(ctx, r.Args[0])
	if err != nil {
		return err
	}
	stats, err := svc.Stats(ctx, p.ID)
	if err != nil {
		return err
	}

	return r.Out.Success(projectDetail{Project: p, Stats: stats}, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, styles.TitleStyle.Render(p.Name)); err != nil {
			return err
		}
		if p.Description != "" {
			fmt.Fprintln(w, styles.SubtitleStyle.Render(p.Description))
		}
		for _, st := range models.Statuses() {
			fmt.Fprintln(w, styles.Field(st.Label(), fmt.Sprint(stats.ByStatus[st])))
		}
		_, err := fmt.Fprintln(w, styles.Field("Total", fmt.Sprint(stats.Total)))
		return err
	})
}

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project that has no tasks",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runDelete),
	}
}

func runDelete(ctx context.Context, r *handler.Request) error {
	p, err := r.CLI.App.ProjectService.GetProject(ctx, r.Args[0])
	if err != nil {
		return err
	}
	if err := r.CLI.App.ProjectService.DeleteProject(ctx, p.ID); err != nil {
		if errors.Is(err, projectservice.ErrProjectHasTasks) {
			return r.Out.Failure(err, "Move or delete its tasks first: taskboard task list --project="+p.ID)
		}
		return err
	}

	return r.Out.Success(p, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Deleted project %s: %s\n", p.ID, p.Name)
		return err
	})
}

// Package user implements the `taskboard user` commands.
package user

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	userservice "github.com/thenoetrevino/taskboard/internal/services/user"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users that tasks can be assigned to",
	}
	cli.AddFlags(cmd)

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long: `Create a user. The name defaults to the current OS user and the
avatar defaults to the name's initials.

Examples:
  taskboard user create
  taskboard user create --name="Grace Hopper" --avatar=GH
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runCreate),
	}
	cmd.Flags().String("name", "", "Display name (default: current OS user)")
	cmd.Flags().String("avatar", "", "Short avatar text, at most 4 characters")
	return cmd
}

func runCreate(ctx context.Context, r *handler.Request) error {
	flags := r.GetCmd().Flags()
	name, _ := flags.GetString("name")
	if !flags.Changed("name") {
		name = userservice.CurrentUsername()
	}
	avatar, _ := flags.GetString("avatar")

	u, err := r.CLI.App.UserService.CreateUser(ctx, userservice.CreateUserRequest{
		Name:   name,
		Avatar: avatar,
	})
	if err != nil {
		return err
	}

	return r.Out.Success(u, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Created user %s: %s [%s]\n", u.ID, u.Name, u.Avatar)
		return err
	})
}

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runList),
	}
}

func runList(ctx context.Context, r *handler.Request) error {
	users, err := r.CLI.App.UserService.ListUsers(ctx)
	if err != nil {
		return err
	}

	return r.Out.Success(users, func(w io.Writer) error {
		if len(users) == 0 {
			_, err := fmt.Fprintln(w, "No users yet. Create one with: taskboard user create")
			return err
		}
		for _, u := range users {
			line := fmt.Sprintf("%s  %s  %s", u.ID, styles.LabelStyle.Render("["+u.Avatar+"]"), u.Name)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCmd returns the user delete subcommand
func DeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user and unassign their tasks",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runDelete),
	}
}

func runDelete(ctx context.Context, r *handler.Request) error {
	svc := r.CLI.App.UserService
	u, err := svc.GetUser(ctx, r.Args[0])
	if err != nil {
		return err
	}
	if err := svc.DeleteUser(ctx, u.ID); err != nil {
		return err
	}

	return r.Out.Success(u, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Deleted user %s: %s\n", u.ID, u.Name)
		return err
	})
}

// Package cmd wires the taskboard command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	boardcmd "github.com/thenoetrevino/taskboard/internal/cli/board"
	projectcmd "github.com/thenoetrevino/taskboard/internal/cli/project"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	taskcmd "github.com/thenoetrevino/taskboard/internal/cli/task"
	"github.com/thenoetrevino/taskboard/internal/cli/transfer"
	usercmd "github.com/thenoetrevino/taskboard/internal/cli/user"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"github.com/thenoetrevino/taskboard/internal/tui"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// session owns what bootstrap opened for one invocation.
type session struct {
	cli      *cli.CLI
	closeLog func()
}

func (s *session) close() error {
	var err error
	if s.cli != nil {
		err = s.cli.Close()
		s.cli = nil
	}
	if s.closeLog != nil {
		s.closeLog()
		s.closeLog = nil
	}
	return err
}

// Execute runs the command tree and releases everything it opened.
func Execute(ctx context.Context) error {
	root, sess := newRootCmd()
	err := root.ExecuteContext(ctx)
	if closeErr := sess.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd() (*cobra.Command, *session) {
	sess := &session{}

	var (
		configPath string
		dbPath     string
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "taskboard - a terminal kanban board",
		Long: `taskboard tracks tasks across four columns: To Do, In Progress, Review and Done.

Run without a subcommand to open the interactive board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = dbPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			c, closeLog, err := bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			sess.cli, sess.closeLog = c, closeLog

			cmd.SetContext(cli.WithCLI(cmd.Context(), c))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cli.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), c.App)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML or TOML; default: $XDG_CONFIG_HOME/taskboard/config.yaml)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: $XDG_DATA_HOME/taskboard/taskboard.db)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Usagef("%v", err)
	})

	root.AddCommand(taskcmd.TaskCmd())
	root.AddCommand(projectcmd.ProjectCmd())
	root.AddCommand(usercmd.UserCmd())
	root.AddCommand(boardcmd.BoardCmd())
	root.AddCommand(transfer.ExportCmd())
	root.AddCommand(transfer.ImportCmd())

	return root, sess
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// bootstrap opens the log, the database and the workspace and builds the CLI
// around them. The returned closer flushes the log.
func bootstrap(ctx context.Context, cfg *config.Config) (*cli.CLI, func(), error) {
	closeLog, err := logging.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, closeLog, err
	}

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	repo := database.NewRepository(db)

	snap, err := repo.Load(ctx)
	if err != nil {
		err = errors.Join(fmt.Errorf("failed to load workspace: %w", err), repo.Close())
		closeLog()
		return nil, nil, err
	}

	store := workspace.NewStore(
		workspace.WithSnapshot(snap),
		workspace.WithPersister(repo),
		workspace.WithPolicy(cfg.Workflow.Policy()),
		workspace.WithLogger(logging.Component("store")),
	)
	a := app.New(store, app.WithRepository(repo), app.WithConfig(cfg))
	styles.Init(cfg.ColorScheme)

	log.Debug().
		Int("tasks", len(snap.Tasks)).
		Str("workflow", cfg.Workflow.Mode).
		Msg("workspace loaded")

	return cli.New(a), closeLog, nil
}

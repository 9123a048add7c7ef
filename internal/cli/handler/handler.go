// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/cli"
)

// Request is everything a command body needs.
type Request struct {
	CLI  *cli.CLI
	Out  *cli.OutputFormatter
	Args []string
	cmd  *cobra.Command
}

// GetCmd returns the cobra command for access to flag parsing utilities
func (r *Request) GetCmd() *cobra.Command {
	return r.cmd
}

// Flags returns a parser over the command's flags.
func (r *Request) Flags() *FlagParser {
	return NewFlagParser(r.cmd, r.CLI.Now)
}

// Func is a command body. It writes results through r.Out and returns an
// error that decides the exit code.
type Func func(ctx context.Context, r *Request) error

// Command wraps common command execution logic: it resolves the CLI from the
// command context, builds the formatter from --json/--quiet and reports any
// error that fn did not report itself.
// Returns a cobra RunE compatible function
func Command(fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		formatter := cli.NewFormatter(cmd)

		c, err := cli.FromContext(ctx)
		if err != nil {
			if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
				log.Error().Err(fmtErr).Msg("failed to format error message")
			}
			return &cli.CommandError{Code: cli.ExitError, Err: err, Reported: true}
		}

		err = fn(ctx, &Request{CLI: c, Out: formatter, Args: args, cmd: cmd})
		if err == nil {
			return nil
		}

		var exitErr *cli.CommandError
		if errors.As(err, &exitErr) && exitErr.Reported {
			return err
		}

		log.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
		return formatter.Failure(err, "")
	}
}

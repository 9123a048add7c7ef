package cli

import (
	"context"
	"errors"
)

// ErrNoCLI is returned when a command runs without an initialized CLI in its
// context.
var ErrNoCLI = errors.New("CLI not initialized")

type cliKey struct{}

// WithCLI stores c in ctx for subcommands.
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// FromContext returns the CLI stored by WithCLI.
func FromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, ErrNoCLI
	}
	c, ok := ctx.Value(cliKey{}).(*CLI)
	if !ok || c == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}

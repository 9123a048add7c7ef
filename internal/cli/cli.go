// Package cli holds what every taskboard subcommand shares: the application
// context, output formatting and the mapping from errors to exit codes.
package cli

import (
	"time"

	"github.com/thenoetrevino/taskboard/internal/app"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	// Now is the clock used for relative due dates; nil means time.Now.
	Now func() time.Time
}

// New wraps an application container for command use.
func New(a *app.App) *CLI {
	return &CLI{App: a, Now: time.Now}
}

// Clock returns the current time from Now.
func (c *CLI) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}

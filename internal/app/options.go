package app

import (
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	bus    *events.Bus
	repo   *database.Repository
	config *config.Config
}

// WithBus sets the event bus. Without it App creates its own.
func WithBus(bus *events.Bus) Option {
	return func(cfg *appConfig) {
		cfg.bus = bus
	}
}

// WithRepository hands the repository to App so Close can release it.
func WithRepository(repo *database.Repository) Option {
	return func(cfg *appConfig) {
		cfg.repo = repo
	}
}

// WithConfig sets the loaded configuration
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		cfg.config = c
	}
}

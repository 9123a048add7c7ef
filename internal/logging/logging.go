package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Init points the global zerolog logger at path (JSON lines, appended) and sets
// the level. An empty path uses DefaultPath. Logs never go to stdout, which is
// reserved for command output and the TUI.
//
// The returned closer flushes and closes the log file.
func Init(level, path string) (func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return closer, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return closer, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return closer, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return closer, fmt.Errorf("failed to open log file: %w", err)
	}
	closer = func() { _ = file.Close() }

	log.Logger = New(file, lvl)
	zerolog.SetGlobalLevel(lvl)

	return closer, nil
}

// New builds a timestamped logger with the context hook installed.
func New(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl).
		Hook(ContextHook{})
}

// DefaultPath resolves $XDG_STATE_HOME/taskboard/taskboard.log, falling back to
// ~/.taskboard/logs/taskboard.log.
func DefaultPath() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "taskboard", "taskboard.log"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskboard", "logs", "taskboard.log"), nil
}

// Component returns a sub-logger of the global logger tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

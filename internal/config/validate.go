package config

import (
	"fmt"
	"slices"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workflow"
)

// Validate reports every invalid field at once as criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("log.level", c.Log.Level, validLogLevel),
		criterio.Run("workflow.mode", c.Workflow.Mode, validWorkflowMode),
		c.validateTransitions(),
		c.validateBoard(),
	)
}

func validLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

func validWorkflowMode(mode string) error {
	if !slices.Contains([]string{workflow.ModeFree, workflow.ModeGuarded}, mode) {
		return fmt.Errorf("must be %q or %q, got %q", workflow.ModeFree, workflow.ModeGuarded, mode)
	}
	return nil
}

const minColumnWidth = 16

func (c *Config) validateBoard() error {
	if c.Board.ColumnWidth < minColumnWidth {
		return criterio.NewFieldErrors("board.column_width",
			fmt.Errorf("must be at least %d, got %d", minColumnWidth, c.Board.ColumnWidth))
	}
	return nil
}

func (c *Config) validateTransitions() error {
	var errs criterio.FieldErrorsBuilder
	for from, tos := range c.Workflow.Transitions {
		field := fmt.Sprintf("workflow.transitions[%q]", from)
		if _, err := models.ParseStatus(from); err != nil {
			errs = errs.Append(field, err)
		}
		for i, to := range tos {
			if _, err := models.ParseStatus(to); err != nil {
				errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), err)
			}
		}
	}
	return errs.ToError()
}

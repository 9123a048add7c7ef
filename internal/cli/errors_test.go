package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workflow"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"nil", nil, "OK", ExitSuccess},
		{"usage", Usagef("bad %s", "flag"), "USAGE_ERROR", ExitUsage},
		{"field errors", criterio.NewFieldErrors("title", errors.New("required")), "VALIDATION_ERROR", ExitValidation},
		{"json syntax", &json.SyntaxError{}, "DATA_ERROR", ExitDataErr},
		{"truncated json", fmt.Errorf("failed to decode snapshot: %w", io.ErrUnexpectedEOF), "DATA_ERROR", ExitDataErr},
		{"task not found", fmt.Errorf("failed to get task: %w", workspace.ErrTaskNotFound), "TASK_NOT_FOUND", ExitNotFound},
		{"subtask not found", workspace.ErrSubtaskNotFound, "SUBTASK_NOT_FOUND", ExitNotFound},
		{"project not found", workspace.ErrProjectNotFound, "PROJECT_NOT_FOUND", ExitNotFound},
		{"user not found", workspace.ErrUserNotFound, "USER_NOT_FOUND", ExitNotFound},
		{"transition refused", fmt.Errorf("todo -> done: %w", workflow.ErrTransitionNotAllowed), "TRANSITION_REFUSED", ExitValidation},
		{"open subtasks", workflow.ErrIncompleteSubtasks, "TRANSITION_REFUSED", ExitValidation},
		{"invalid status", models.ErrInvalidStatus, "VALIDATION_ERROR", ExitValidation},
		{"project has tasks", workspace.ErrProjectHasTasks, "VALIDATION_ERROR", ExitValidation},
		{"anything else", errors.New("disk on fire"), "ERROR", ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := Classify(tt.err)
			assert.Equal(t, tt.code, class.Code)
			assert.Equal(t, tt.exit, class.Exit)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitNotFound, ExitCode(workspace.ErrTaskNotFound))

	wrapped := fmt.Errorf("run: %w", &CommandError{Code: ExitUsage, Err: errors.New("x")})
	assert.Equal(t, ExitUsage, ExitCode(wrapped))
}

func TestFieldMessages(t *testing.T) {
	var b criterio.FieldErrorsBuilder
	b = b.Append("title", errors.New("required"))
	b = b.Append("title", errors.New("too long"))
	b = b.Append("avatar", errors.New("too long"))

	msgs := FieldMessages(b.ToError())
	assert.Equal(t, map[string]string{
		"title":  "required; too long",
		"avatar": "too long",
	}, msgs)

	assert.Nil(t, FieldMessages(errors.New("plain")))
}

package cli

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/filter"
	"github.com/thenoetrevino/taskboard/internal/models"
	projectservice "github.com/thenoetrevino/taskboard/internal/services/project"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
	"github.com/thenoetrevino/taskboard/internal/workflow"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// Class is the machine-readable category of an error: the code shown in JSON
// output and the process exit code.
type Class struct {
	Code string
	Exit int
}

var (
	classNotFound = []error{
		workspace.ErrTaskNotFound,
		workspace.ErrSubtaskNotFound,
		workspace.ErrProjectNotFound,
		workspace.ErrUserNotFound,
	}

	classValidation = []error{
		models.ErrInvalidStatus,
		models.ErrInvalidPriority,
		models.ErrNoNextColumn,
		models.ErrNoPrevColumn,
		filter.ErrInvalidFilter,
		board.ErrStaleTransition,
		workspace.ErrEmptyTitle,
		workspace.ErrEmptyName,
		workspace.ErrDuplicateID,
		workspace.ErrMissingID,
		workspace.ErrProjectHasTasks,
		taskservice.ErrInvalidTaskID,
		taskservice.ErrInvalidStatus,
		taskservice.ErrInvalidPriority,
		taskservice.ErrEmptyPatch,
		taskservice.ErrAlreadyFirstColumn,
		taskservice.ErrAlreadyLastColumn,
		taskservice.ErrNoOpenSubtasks,
		projectservice.ErrInvalidProjectID,
	}
)

// Classify maps an error to its output code and exit code.
func Classify(err error) Class {
	var usage *UsageError
	var fieldErrs criterio.FieldErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case err == nil:
		return Class{Code: "OK", Exit: ExitSuccess}
	case errors.As(err, &usage):
		return Class{Code: "USAGE_ERROR", Exit: ExitUsage}
	case errors.As(err, &fieldErrs):
		return Class{Code: "VALIDATION_ERROR", Exit: ExitValidation}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return Class{Code: "DATA_ERROR", Exit: ExitDataErr}
	case isAny(err, classNotFound):
		return Class{Code: notFoundCode(err), Exit: ExitNotFound}
	case errors.Is(err, workflow.ErrTransitionNotAllowed), errors.Is(err, workflow.ErrIncompleteSubtasks):
		return Class{Code: "TRANSITION_REFUSED", Exit: ExitValidation}
	case isAny(err, classValidation):
		return Class{Code: "VALIDATION_ERROR", Exit: ExitValidation}
	}
	return Class{Code: "ERROR", Exit: ExitError}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func notFoundCode(err error) string {
	switch {
	case errors.Is(err, workspace.ErrTaskNotFound):
		return "TASK_NOT_FOUND"
	case errors.Is(err, workspace.ErrSubtaskNotFound):
		return "SUBTASK_NOT_FOUND"
	case errors.Is(err, workspace.ErrProjectNotFound):
		return "PROJECT_NOT_FOUND"
	default:
		return "USER_NOT_FOUND"
	}
}

// FieldMessages flattens criterio field errors into field -> message, or
// returns nil for any other error.
func FieldMessages(err error) map[string]string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Err.Error()
		if prev, ok := out[fe.Field]; ok {
			msg = strings.Join([]string{prev, msg}, "; ")
		}
		out[fe.Field] = msg
	}
	return out
}

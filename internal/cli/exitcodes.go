package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures, or any error that
	// doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing arguments, invalid flag combinations, or an
	// interactive stdin where piped input was expected.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task, subtask, project or user ids that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed input data.
	// Use for: Import files that are not valid JSON.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid status or priority values, refused transitions, or
	// any case where input fails validation rules.
	ExitValidation = 5
)

// CommandError carries the process exit code for a failed command. Reported
// means the message has already been written to the user.
type CommandError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// UsageError marks an error caused by how the command was invoked.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Usagef builds a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return Classify(err).Exit
}

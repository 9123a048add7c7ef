package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey string

const (
	taskIDKey    contextKey = "task_id"
	projectIDKey contextKey = "project_id"
)

// WithTaskID adds a task ID to the context.
func WithTaskID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, taskIDKey, id)
}

// WithProjectID adds a project ID to the context.
func WithProjectID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, projectIDKey, id)
}

// GetTaskID returns the task ID stored in ctx, or "".
func GetTaskID(ctx context.Context) string {
	if id, ok := ctx.Value(taskIDKey).(string); ok {
		return id
	}
	return ""
}

// GetProjectID returns the project ID stored in ctx, or "".
func GetProjectID(ctx context.Context) string {
	if id, ok := ctx.Value(projectIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextHook copies task_id and project_id from the event context into the log line.
type ContextHook struct{}

func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := GetTaskID(ctx); id != "" {
		e.Str("task_id", id)
	}
	if id := GetProjectID(ctx); id != "" {
		e.Str("project_id", id)
	}
}

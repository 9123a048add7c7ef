package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

var (
	// ErrStaleTransition means the task left the source column before the
	// event was applied.
	ErrStaleTransition = errors.New("task is no longer in the source column")

	// ErrSourceClosed is returned by Next once a source has no more events.
	ErrSourceClosed = errors.New("transition source closed")
)

// TransitionEvent asks for a task to move between columns. It is produced by
// whatever input drives the board (keyboard, CLI, a drag gesture) and carries
// no knowledge of that input.
type TransitionEvent struct {
	TaskID string
	// From is the column the input saw the task in. Empty skips the
	// staleness check.
	From models.Status
	To   models.Status
}

func (e TransitionEvent) String() string {
	return fmt.Sprintf("%s: %s -> %s", e.TaskID, e.From, e.To)
}

// EventSource yields transition events until it is closed.
type EventSource interface {
	Next(ctx context.Context) (TransitionEvent, error)
}

// Mover looks tasks up and moves them. The task service implements it.
type Mover interface {
	GetTask(ctx context.Context, id string) (models.Task, error)
	MoveTask(ctx context.Context, id string, to models.Status) (models.Task, error)
}

// Apply performs one transition. An event whose From no longer matches the
// task's status fails with ErrStaleTransition; an event whose To equals the
// current status is a no-op.
func Apply(ctx context.Context, m Mover, ev TransitionEvent) (models.Task, error) {
	task, err := m.GetTask(ctx, ev.TaskID)
	if err != nil {
		return models.Task{}, err
	}
	if ev.From != "" && ev.From != task.Status {
		return task, fmt.Errorf("%w: %s is in %s, not %s", ErrStaleTransition, task.ID, task.Status, ev.From)
	}
	if ev.To == task.Status {
		return task, nil
	}
	return m.MoveTask(ctx, ev.TaskID, ev.To)
}

// Run applies events from src until the source closes or ctx is cancelled.
// Each result is reported to onResult, which may be nil. Failed transitions do
// not stop the loop.
func Run(ctx context.Context, src EventSource, m Mover, onResult func(TransitionEvent, models.Task, error)) error {
	for {
		ev, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				return nil
			}
			return err
		}

		task, err := Apply(ctx, m, ev)
		if onResult != nil {
			onResult(ev, task, err)
		}
	}
}

// Step builds the event that moves task one column left (delta -1) or right
// (delta +1).
func Step(task models.Task, delta int) (TransitionEvent, error) {
	var to models.Status
	var err error
	switch {
	case delta < 0:
		to, err = task.Status.Prev()
	case delta > 0:
		to, err = task.Status.Next()
	default:
		to = task.Status
	}
	if err != nil {
		return TransitionEvent{}, err
	}
	return TransitionEvent{TaskID: task.ID, From: task.Status, To: to}, nil
}

// ChanSource is a channel-backed EventSource.
type ChanSource struct {
	ch chan TransitionEvent
}

// NewChanSource creates a source with the given buffer.
func NewChanSource(buffer int) *ChanSource {
	return &ChanSource{ch: make(chan TransitionEvent, buffer)}
}

// Emit queues an event, blocking until there is room or ctx is done.
func (s *ChanSource) Emit(ctx context.Context, ev TransitionEvent) error {
	select {
	case s.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the stream. Events already queued are still delivered.
func (s *ChanSource) Close() {
	close(s.ch)
}

func (s *ChanSource) Next(ctx context.Context) (TransitionEvent, error) {
	select {
	case ev, ok := <-s.ch:
		if !ok {
			return TransitionEvent{}, ErrSourceClosed
		}
		return ev, nil
	case <-ctx.Done():
		return TransitionEvent{}, ctx.Err()
	}
}

var _ EventSource = (*ChanSource)(nil)

package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workflow"
)

// Persister saves the workspace after every change.
type Persister interface {
	Save(ctx context.Context, snap models.Snapshot) error
}

// Listener is called after a dispatched action changed the state. It runs on
// the dispatching goroutine after the store lock is released.
type Listener func(prev, next State, action Action)

// Store owns the current State and serializes every change through the
// Reducer. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   State
	reducer Reducer

	persister Persister
	newID     func() string
	logger    zerolog.Logger

	lmu          sync.RWMutex
	listeners    map[int]Listener
	nextListener int
}

// Option configures a Store.
type Option func(*Store)

// WithPersister saves the snapshot after every change.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithPolicy sets the transition policy consulted by MoveTask.
func WithPolicy(p workflow.TransitionPolicy) Option {
	return func(s *Store) {
		if p != nil {
			s.reducer.Policy = p
		}
	}
}

// WithClock replaces the wall clock used to stamp tasks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.reducer.Now = now
		}
	}
}

// WithIDGenerator replaces the uuid generator returned by NewID.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSnapshot seeds the store with existing data. The snapshot is not
// validated; use Dispatch(Load) for untrusted input.
func WithSnapshot(snap models.Snapshot) Option {
	return func(s *Store) { s.state = NewState(snap) }
}

// NewStore creates an empty store with the free transition policy.
func NewStore(opts ...Option) *Store {
	s := &Store{
		reducer:   NewReducer(),
		newID:     uuid.NewString,
		logger:    zerolog.Nop(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Policy returns the transition policy in effect.
func (s *Store) Policy() workflow.TransitionPolicy {
	return s.reducer.policy()
}

// NewID returns a fresh identifier for a task, subtask, project or user.
func (s *Store) NewID() string {
	return s.newID()
}

// Dispatch reduces action against the current state and commits the result.
// When a Persister is set, the new snapshot is saved before the commit; a
// failed save leaves the in-memory state unchanged. Listeners are only called
// when the state actually changed.
func (s *Store) Dispatch(ctx context.Context, action Action) (State, error) {
	_, next, err := s.Commit(ctx, action)
	return next, err
}

// Commit is Dispatch that also returns the state the action was reduced
// against. prev and next come from the same critical section, so callers can
// diff them without racing other writers. On error both are the current state.
func (s *Store) Commit(ctx context.Context, action Action) (prev, next State, err error) {
	if err := ctx.Err(); err != nil {
		cur := s.State()
		return cur, cur, err
	}

	s.mu.Lock()
	prev = s.state
	next, err = s.reducer.Reduce(prev, action)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug().Err(err).Str("action", kindOf(action)).Msg("action rejected")
		return prev, prev, err
	}

	if next.version == prev.version {
		s.mu.Unlock()
		return prev, prev, nil
	}

	if s.persister != nil {
		if err := s.persister.Save(ctx, next.Snapshot()); err != nil {
			s.mu.Unlock()
			s.logger.Error().Err(err).Str("action", kindOf(action)).Msg("failed to persist workspace")
			return prev, prev, fmt.Errorf("failed to persist workspace: %w", err)
		}
	}

	s.state = next
	s.mu.Unlock()

	s.logger.Debug().
		Str("action", kindOf(action)).
		Uint64("version", next.version).
		Msg("state changed")

	s.notify(prev, next, action)
	return prev, next, nil
}

// Subscribe registers fn for change notifications. The returned func removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.lmu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) notify(prev, next State, action Action) {
	s.lmu.RLock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.RUnlock()

	for _, fn := range fns {
		fn(prev, next, action)
	}
}

func kindOf(a Action) string {
	if a == nil {
		return "nil"
	}
	return a.Kind()
}

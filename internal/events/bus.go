// Package events fans workspace changes out to in-process subscribers such as
// the TUI.
package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 64

// Publisher sends events. Services depend on this rather than on Bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Bus delivers each published event to every matching subscriber. Sends never
// block: a subscriber whose queue is full misses the event and the drop is
// counted in Metrics.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	closed      bool

	sequence atomic.Int64
	metrics  *Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewBus creates an open bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[*Subscription]struct{}),
		metrics:     NewMetrics(),
		logger:      logger,
		now:         time.Now,
	}
}

// Subscription is a subscriber's queue. Read events from C.
type Subscription struct {
	C <-chan Event

	ch        chan Event
	projectID string
	bus       *Bus
	once      sync.Once
}

// Subscribe registers a subscriber. An empty projectID receives events for
// every project; otherwise only events for that project or with no project
// are delivered.
func (b *Bus) Subscribe(projectID string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan Event, buffer)
	sub := &Subscription{C: ch, ch: ch, projectID: projectID, bus: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return sub
	}
	b.subscribers[sub] = struct{}{}
	b.metrics.Subscribers.Add(1)
	return sub
}

// Close unregisters the subscription and closes C. It is safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if _, ok := s.bus.subscribers[s]; ok {
			delete(s.bus.subscribers, s)
			s.bus.metrics.Subscribers.Add(-1)
			close(s.ch)
		}
	})
}

func (s *Subscription) wants(e Event) bool {
	return e.ProjectID == "" || s.projectID == "" || s.projectID == e.ProjectID
}

// Publish stamps the event with a sequence number (and a timestamp when
// missing) and delivers it.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	event.SequenceID = b.sequence.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = b.now().UTC()
	}
	b.metrics.Published.Add(1)

	for sub := range b.subscribers {
		if !sub.wants(event) {
			continue
		}
		select {
		case sub.ch <- event:
			b.metrics.Delivered.Add(1)
		default:
			b.metrics.Dropped.Add(1)
			b.logger.Warn().
				Str("event_type", string(event.Type)).
				Int64("sequence_id", event.SequenceID).
				Msg("subscriber queue full, event dropped")
		}
	}
	return nil
}

// Metrics exposes the bus counters.
func (b *Bus) Metrics() *Metrics {
	return b.metrics
}

// Close closes every subscription. Later publishes fail with ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subscribers {
		close(sub.ch)
		delete(b.subscribers, sub)
	}
	b.metrics.Subscribers.Store(0)
}

var (
	_ Publisher = (*Bus)(nil)
	_ Publisher = NoopPublisher{}
)

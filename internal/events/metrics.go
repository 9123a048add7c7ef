package events

import (
	"sync/atomic"
	"time"
)

// Metrics tracks bus statistics using atomic operations for thread-safety
type Metrics struct {
	Published   atomic.Int64
	Delivered   atomic.Int64
	Dropped     atomic.Int64
	Subscribers atomic.Int32
	StartTime   time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Published   int64         `json:"published"`
	Delivered   int64         `json:"delivered"`
	Dropped     int64         `json:"dropped"`
	Subscribers int32         `json:"subscribers"`
	Uptime      time.Duration `json:"uptime"`
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Published:   m.Published.Load(),
		Delivered:   m.Delivered.Load(),
		Dropped:     m.Dropped.Load(),
		Subscribers: m.Subscribers.Load(),
		Uptime:      time.Since(m.StartTime),
	}
}

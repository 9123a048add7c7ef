package testutil

import (
	"testing"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/workspace"
)

// NewStore returns a store seeded with snap, a fixed clock and sequential ids.
// Extra options are applied last.
func NewStore(t *testing.T, snap models.Snapshot, opts ...workspace.Option) *workspace.Store {
	t.Helper()
	base := []workspace.Option{
		workspace.WithSnapshot(snap),
		workspace.WithClock(func() time.Time { return FixedNow }),
		workspace.WithIDGenerator(SequentialIDs("id")),
	}
	return workspace.NewStore(append(base, opts...)...)
}

// Package workflow decides whether a task may move between status columns.
//
// The board itself places no restriction on moves. A Guarded policy can be
// configured to restrict which columns a task may move to and to hold tasks
// out of done until their checklist is finished.
package workflow

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

var (
	// ErrTransitionNotAllowed is returned when the configured rules forbid a move.
	ErrTransitionNotAllowed = errors.New("transition not allowed")

	// ErrIncompleteSubtasks is returned when moving to done with open subtasks.
	ErrIncompleteSubtasks = errors.New("task has incomplete subtasks")
)

// Policy mode names used in configuration.
const (
	ModeFree    = "free"
	ModeGuarded = "guarded"
)

// TransitionPolicy reports whether task may move to the given status. A nil
// return allows the move.
type TransitionPolicy interface {
	Allow(task models.Task, to models.Status) error
}

// Free allows any move between any two statuses.
type Free struct{}

func (Free) Allow(models.Task, models.Status) error { return nil }

// Guarded restricts moves to an allow-list per source status. Statuses with no
// entry in the list are unrestricted.
type Guarded struct {
	allowed         map[models.Status]map[models.Status]struct{}
	requireSubtasks bool
}

// NewGuarded builds a policy from an allow-list keyed by source status.
func NewGuarded(rules map[models.Status][]models.Status, requireSubtasksForDone bool) *Guarded {
	g := &Guarded{
		allowed:         make(map[models.Status]map[models.Status]struct{}, len(rules)),
		requireSubtasks: requireSubtasksForDone,
	}
	for from, tos := range rules {
		set := make(map[models.Status]struct{}, len(tos))
		for _, to := range tos {
			set[to] = struct{}{}
		}
		g.allowed[from] = set
	}
	return g
}

func (g *Guarded) Allow(task models.Task, to models.Status) error {
	if set, ok := g.allowed[task.Status]; ok {
		if _, ok := set[to]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, task.Status, to)
		}
	}

	if g.requireSubtasks && to == models.StatusDone {
		p := task.Progress()
		if p.Done < p.Total {
			return fmt.Errorf("%w: %d of %d done", ErrIncompleteSubtasks, p.Done, p.Total)
		}
	}

	return nil
}

// Targets lists the statuses a task in from may move to, in column order.
func Targets(p TransitionPolicy, task models.Task) []models.Status {
	var out []models.Status
	for _, s := range models.Statuses() {
		if s == task.Status {
			continue
		}
		if p.Allow(task, s) == nil {
			out = append(out, s)
		}
	}
	return out
}

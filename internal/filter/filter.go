// Package filter selects tasks by assignee, status and priority, with optional
// project, tag-glob and fuzzy title criteria.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// All disables a criterion. An empty string means the same thing.
const All = "all"

// ErrInvalidFilter is returned by Parse and Validate for malformed criteria.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter describes which tasks to keep. A task is kept when it satisfies every
// criterion that is not All.
type Filter struct {
	Assignee string
	Status   string
	Priority string

	Project string
	// Tags holds doublestar patterns; a task matches when any of its tags
	// matches any pattern.
	Tags []string
	// Query is fuzzy-matched against the task title. When set, results are
	// ordered best match first.
	Query string
}

// Parse builds a Filter from raw flag values. Status and priority must be a
// known value or "all". The assignee is taken as given: an id that matches
// nobody is a valid filter that selects nothing.
func Parse(assignee, status, priority string) (Filter, error) {
	f := Filter{
		Assignee: normalize(assignee),
		Status:   normalize(status),
		Priority: normalize(priority),
	}

	if f.Status != All {
		s, err := models.ParseStatus(f.Status)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		f.Status = string(s)
	}
	if f.Priority != All {
		p, err := models.ParsePriority(f.Priority)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		f.Priority = string(p)
	}

	return f, nil
}

// Validate checks the supplementary criteria.
func (f Filter) Validate() error {
	for _, pattern := range f.Tags {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad tag pattern %q", ErrInvalidFilter, pattern)
		}
	}
	return nil
}

// IsZero reports whether the filter keeps every task.
func (f Filter) IsZero() bool {
	return isAll(f.Assignee) && isAll(f.Status) && isAll(f.Priority) &&
		isAll(f.Project) && len(f.Tags) == 0 && strings.TrimSpace(f.Query) == ""
}

func (f Filter) String() string {
	if f.IsZero() {
		return "all tasks"
	}

	var parts []string
	add := func(name, v string) {
		if !isAll(v) {
			parts = append(parts, name+"="+v)
		}
	}
	add("assignee", f.Assignee)
	add("status", f.Status)
	add("priority", f.Priority)
	add("project", f.Project)
	if len(f.Tags) > 0 {
		parts = append(parts, "tags="+strings.Join(f.Tags, ","))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("search=%q", q))
	}
	return strings.Join(parts, " ")
}

// Matches reports whether a single task passes every criterion except Query.
func (f Filter) Matches(t models.Task) bool {
	if !isAll(f.Assignee) && t.AssigneeID != f.Assignee {
		return false
	}
	if !isAll(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if !isAll(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	if !isAll(f.Project) && t.ProjectID != f.Project {
		return false
	}
	if len(f.Tags) > 0 && !matchesAnyTag(t.Tags, f.Tags) {
		return false
	}
	return true
}

// Apply returns the tasks that satisfy f. It never modifies its input and
// always returns a non-nil slice. Without a Query the input order is kept.
func Apply(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}

	q := strings.TrimSpace(f.Query)
	if q == "" || len(out) == 0 {
		return out
	}

	matches := fuzzy.FindFrom(q, titles(out))
	ranked := make([]models.Task, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, out[m.Index])
	}
	return ranked
}

// titles adapts a task slice to fuzzy.Source.
type titles []models.Task

func (ts titles) String(i int) string { return ts[i].Title }
func (ts titles) Len() int            { return len(ts) }

func matchesAnyTag(tags, patterns []string) bool {
	for _, tag := range tags {
		for _, pattern := range patterns {
			// invalid patterns never match; Validate reports them
			if ok, _ := doublestar.Match(strings.ToLower(pattern), tag); ok {
				return true
			}
		}
	}
	return false
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	if isAll(v) {
		return All
	}
	return v
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

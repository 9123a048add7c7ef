package models

import (
	"errors"
	"testing"
	"time"
)

// ============================================================================
// Status Tests
// ============================================================================

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"todo", StatusTodo, false},
		{"in-progress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"In Progress", StatusInProgress, false},
		{"inprogress", StatusInProgress, false},
		{" REVIEW ", StatusReview, false},
		{"done", StatusDone, false},
		{"blocked", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatus_NextPrev(t *testing.T) {
	next, err := StatusTodo.Next()
	if err != nil || next != StatusInProgress {
		t.Fatalf("todo.Next() = %q, %v", next, err)
	}
	if _, err := StatusDone.Next(); !errors.Is(err, ErrNoNextColumn) {
		t.Errorf("done.Next() error = %v, want ErrNoNextColumn", err)
	}
	if _, err := StatusTodo.Prev(); !errors.Is(err, ErrNoPrevColumn) {
		t.Errorf("todo.Prev() error = %v, want ErrNoPrevColumn", err)
	}
	if _, err := Status("nope").Next(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown.Next() error = %v, want ErrInvalidStatus", err)
	}
}

func TestStatuses_ReturnsCopy(t *testing.T) {
	s := Statuses()
	s[0] = StatusDone
	if Statuses()[0] != StatusTodo {
		t.Error("Statuses() must not expose the internal order slice")
	}
}

// ============================================================================
// Priority Tests
// ============================================================================

func TestPriority_Rank(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("expected high < medium < low rank ordering")
	}
	if Priority("urgent").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority should rank after low")
	}
}

func TestParsePriority(t *testing.T) {
	if p, err := ParsePriority("HIGH"); err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority(HIGH) = %q, %v", p, err)
	}
	if _, err := ParsePriority("critical"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

// ============================================================================
// Task Tests
// ============================================================================

func TestTask_CloneIsDeep(t *testing.T) {
	due := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	orig := Task{
		ID:       "1",
		Subtasks: []Subtask{{ID: "s1", Title: "a"}},
		Tags:     []string{"x"},
		DueDate:  &due,
	}

	c := orig.Clone()
	c.Subtasks[0].Completed = true
	c.Tags[0] = "y"
	*c.DueDate = due.Add(time.Hour)

	if orig.Subtasks[0].Completed {
		t.Error("clone shares subtask slice")
	}
	if orig.Tags[0] != "x" {
		t.Error("clone shares tag slice")
	}
	if !orig.DueDate.Equal(due) {
		t.Error("clone shares due date")
	}
}

func TestTask_Progress(t *testing.T) {
	task := Task{Subtasks: []Subtask{{Completed: true}, {Completed: false}, {Completed: true}}}
	p := task.Progress()
	if p.Done != 2 || p.Total != 3 {
		t.Errorf("Progress() = %+v, want 2/3", p)
	}
	if p.Done > p.Total {
		t.Error("done must never exceed total")
	}
	if p.Complete() {
		t.Error("2/3 is not complete")
	}
	if (SubtaskProgress{}).Complete() {
		t.Error("empty checklist is not complete")
	}
	if p.Percent() != 66 {
		t.Errorf("Percent() = %d, want 66", p.Percent())
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	if !(Task{Status: StatusTodo, DueDate: &past}).IsOverdue(now) {
		t.Error("todo task past due should be overdue")
	}
	if (Task{Status: StatusDone, DueDate: &past}).IsOverdue(now) {
		t.Error("done task is never overdue")
	}
	if (Task{Status: StatusTodo}).IsOverdue(now) {
		t.Error("task without due date is never overdue")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Backend", "api", "backend", "", "API"})
	want := []string{"api", "backend"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if NormalizeTags([]string{" ", ""}) != nil {
		t.Error("all-empty input should normalize to nil")
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Ada Lovelace":         "AL",
		"grace":                "G",
		"Alan Mathison Turing": "AM",
		"":                     "",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

package models

// Subtask is a checklist entry on a task. Order is significant.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SubtaskProgress summarises a task's checklist. Done never exceeds Total.
type SubtaskProgress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Complete reports whether every subtask is done. A task without subtasks is
// never considered complete.
func (p SubtaskProgress) Complete() bool {
	return p.Total > 0 && p.Done == p.Total
}

// Percent returns completion in the range 0..100.
func (p SubtaskProgress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Done * 100 / p.Total
}

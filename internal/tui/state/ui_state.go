package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	HelpMode                      // Displaying help screen
	TaskFormMode                  // Creating a task with huh
	DeleteConfirmMode             // Confirming task deletion
)

// UIState manages the user interface state: column and task selection,
// terminal dimensions and the current interaction mode.
type UIState struct {
	// selectedColumn is the index of the currently selected column
	selectedColumn int

	// selectedTask is the index of the currently selected task within the selected column
	selectedTask int

	width  int
	height int

	mode Mode
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

func (s *UIState) SelectedColumn() int { return s.selectedColumn }

func (s *UIState) SetSelectedColumn(i int) { s.selectedColumn = max(i, 0) }

func (s *UIState) SelectedTask() int { return s.selectedTask }

func (s *UIState) SetSelectedTask(i int) { s.selectedTask = max(i, 0) }

func (s *UIState) Width() int { return s.width }

func (s *UIState) SetWidth(w int) { s.width = w }

func (s *UIState) Height() int { return s.height }

func (s *UIState) SetHeight(h int) { s.height = h }

func (s *UIState) Mode() Mode { return s.mode }

func (s *UIState) SetMode(m Mode) { s.mode = m }

// ClampSelection keeps the selection inside a board of columns whose task
// counts are given, in column order.
func (s *UIState) ClampSelection(counts []int) {
	if len(counts) == 0 {
		s.selectedColumn, s.selectedTask = 0, 0
		return
	}
	s.selectedColumn = min(s.selectedColumn, len(counts)-1)
	n := counts[s.selectedColumn]
	if n == 0 {
		s.selectedTask = 0
		return
	}
	s.selectedTask = min(s.selectedTask, n-1)
}

// ResetSelection moves the cursor back to the first task of the first column.
func (s *UIState) ResetSelection() {
	s.selectedColumn = 0
	s.selectedTask = 0
}

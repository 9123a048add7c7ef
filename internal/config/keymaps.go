package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Tasks
	AddTask       string `yaml:"add_task" toml:"add_task"`
	DeleteTask    string `yaml:"delete_task" toml:"delete_task"`
	MoveTaskLeft  string `yaml:"move_task_left" toml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right" toml:"move_task_right"`
	ToggleSubtask string `yaml:"toggle_subtask" toml:"toggle_subtask"`

	// Navigation
	PrevColumn string `yaml:"prev_column" toml:"prev_column"`
	NextColumn string `yaml:"next_column" toml:"next_column"`
	PrevTask   string `yaml:"prev_task" toml:"prev_task"`
	NextTask   string `yaml:"next_task" toml:"next_task"`

	// Filters
	CycleStatusFilter   string `yaml:"cycle_status_filter" toml:"cycle_status_filter"`
	CycleAssigneeFilter string `yaml:"cycle_assignee_filter" toml:"cycle_assignee_filter"`
	ClearFilter         string `yaml:"clear_filter" toml:"clear_filter"`

	// Other
	ShowHelp string `yaml:"show_help" toml:"show_help"`
	Quit     string `yaml:"quit" toml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTask:       "a",
		DeleteTask:    "d",
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		ToggleSubtask: "space",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		CycleStatusFilter:   "f",
		CycleAssigneeFilter: "u",
		ClearFilter:         "esc",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&k.AddTask, d.AddTask)
	fill(&k.DeleteTask, d.DeleteTask)
	fill(&k.MoveTaskLeft, d.MoveTaskLeft)
	fill(&k.MoveTaskRight, d.MoveTaskRight)
	fill(&k.ToggleSubtask, d.ToggleSubtask)
	fill(&k.PrevColumn, d.PrevColumn)
	fill(&k.NextColumn, d.NextColumn)
	fill(&k.PrevTask, d.PrevTask)
	fill(&k.NextTask, d.NextTask)
	fill(&k.CycleStatusFilter, d.CycleStatusFilter)
	fill(&k.CycleAssigneeFilter, d.CycleAssigneeFilter)
	fill(&k.ClearFilter, d.ClearFilter)
	fill(&k.ShowHelp, d.ShowHelp)
	fill(&k.Quit, d.Quit)
}

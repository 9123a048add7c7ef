// Package colors holds the board color schemes.
package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset" toml:"preset"`

	Accent string `yaml:"accent" toml:"accent"`

	ColumnBorder   string `yaml:"column_border" toml:"column_border"`
	TaskBorder     string `yaml:"task_border" toml:"task_border"`
	SelectedBorder string `yaml:"selected_border" toml:"selected_border"`

	Title  string `yaml:"title" toml:"title"`
	Subtle string `yaml:"subtle" toml:"subtle"` // muted/placeholder text
	Normal string `yaml:"normal" toml:"normal"`

	Overdue string `yaml:"overdue" toml:"overdue"`
	ErrorFg string `yaml:"error_fg" toml:"error_fg"`
	InfoFg  string `yaml:"info_fg" toml:"info_fg"`
}

// GetPreset returns a preset color scheme by name. Unknown names get the default.
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills empty values from the named preset.
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Preset, preset.Preset)
	fill(&c.Accent, preset.Accent)
	fill(&c.ColumnBorder, preset.ColumnBorder)
	fill(&c.TaskBorder, preset.TaskBorder)
	fill(&c.SelectedBorder, preset.SelectedBorder)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.Overdue, preset.Overdue)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.InfoFg, preset.InfoFg)
}

package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ColumnBorder:   "#FFFFFF",
		TaskBorder:     "#585858",
		SelectedBorder: "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		Overdue: "#FFFFFF",
		ErrorFg: "#FFFFFF",
		InfoFg:  "#FFFFFF",
	}
}

package board

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/thenoetrevino/taskboard/internal/config/colors"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Styles are computed once per color scheme.
type Styles struct {
	Column         lipgloss.Style
	SelectedColumn lipgloss.Style
	Card           lipgloss.Style
	SelectedCard   lipgloss.Style
	Title          lipgloss.Style
	Subtle         lipgloss.Style
	Overdue        lipgloss.Style
	Tag            lipgloss.Style
	GroupHeader    lipgloss.Style
}

// NewStyles builds the board styles for a color scheme.
func NewStyles(scheme colors.ColorScheme, columnWidth int) Styles {
	scheme.ApplyDefaults()
	if columnWidth < 16 {
		columnWidth = 16
	}

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.ColumnBorder)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(columnWidth)

	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(scheme.TaskBorder)).
		Foreground(lipgloss.Color(scheme.Normal)).
		Width(columnWidth - 4)

	return Styles{
		Column:         column,
		SelectedColumn: column.BorderForeground(lipgloss.Color(scheme.Accent)),
		Card:           card,
		SelectedCard:   card.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(scheme.SelectedBorder)),
		Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)),
		Subtle:         lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)).Italic(true),
		Overdue:        lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Overdue)).Bold(true),
		Tag:            lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Accent)),
		GroupHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)),
	}
}

// RenderOptions control board and list rendering. Selection indexes of -1
// select nothing.
type RenderOptions struct {
	Styles         Styles
	Names          Names
	Now            time.Time
	SelectedColumn int
	SelectedTask   int
	// MaxCards caps the cards drawn per column; 0 draws all.
	MaxCards int
}

// RenderBoard draws the columns side by side.
func RenderBoard(cols []models.Column, opts RenderOptions) string {
	rendered := make([]string, len(cols))
	for i, col := range cols {
		selected := i == opts.SelectedColumn
		rendered[i] = renderColumn(col, selected, opts)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColumn(col models.Column, selected bool, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString(opts.Styles.Title.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))))
	b.WriteString("\n")

	if len(col.Tasks) == 0 {
		b.WriteString(opts.Styles.Subtle.Render("No tasks"))
	}

	start, end := visibleRange(len(col.Tasks), opts.SelectedTask, selected, opts.MaxCards)
	if start > 0 {
		b.WriteString(opts.Styles.Subtle.Render(fmt.Sprintf("▲ %d more", start)) + "\n")
	}
	for i := start; i < end; i++ {
		cardSelected := selected && i == opts.SelectedTask
		b.WriteString(RenderCard(col.Tasks[i], cardSelected, opts))
		b.WriteString("\n")
	}
	if end < len(col.Tasks) {
		b.WriteString(opts.Styles.Subtle.Render(fmt.Sprintf("▼ %d more", len(col.Tasks)-end)))
	}

	style := opts.Styles.Column
	if selected {
		style = opts.Styles.SelectedColumn
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

// visibleRange keeps the selected card inside a window of maxCards.
func visibleRange(n, selectedTask int, selected bool, maxCards int) (int, int) {
	if maxCards <= 0 || n <= maxCards {
		return 0, n
	}
	start := 0
	if selected && selectedTask >= maxCards {
		start = selectedTask - maxCards + 1
	}
	return start, min(start+maxCards, n)
}

// RenderCard draws a single task card: title, priority, assignee, due date,
// subtask progress and tags.
func RenderCard(t models.Task, selected bool, opts RenderOptions) string {
	lines := []string{truncate(t.Title, opts.Styles.Card.GetWidth()-2)}

	meta := []string{string(t.Priority)}
	if t.AssigneeID != "" {
		meta = append(meta, "@"+opts.Names.User(t.AssigneeID))
	}
	if p := t.Progress(); p.Total > 0 {
		meta = append(meta, fmt.Sprintf("☑ %d/%d", p.Done, p.Total))
	}
	lines = append(lines, opts.Styles.Subtle.Render(strings.Join(meta, " · ")))

	if due := DueLabel(t, opts.Now); due != "" {
		if t.IsOverdue(opts.Now) {
			due = opts.Styles.Overdue.Render(due)
		}
		lines = append(lines, due)
	}

	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "#" + tag
		}
		lines = append(lines, opts.Styles.Tag.Render(strings.Join(tags, " ")))
	}

	style := opts.Styles.Card
	if selected {
		style = opts.Styles.SelectedCard
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderList draws grouped tasks one per line.
func RenderList(groups []Group, opts RenderOptions) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(opts.Styles.GroupHeader.Render(fmt.Sprintf("%s (%d)", g.Title, len(g.Tasks))))
		b.WriteString("\n")
		if len(g.Tasks) == 0 {
			b.WriteString("  " + opts.Styles.Subtle.Render("No tasks") + "\n")
			continue
		}
		for _, t := range g.Tasks {
			b.WriteString("  " + ListLine(t, opts) + "\n")
		}
	}
	return b.String()
}

// ListLine is the single-line form of a task used by the list view.
func ListLine(t models.Task, opts RenderOptions) string {
	parts := []string{
		fmt.Sprintf("[%s]", t.ID),
		t.Title,
		fmt.Sprintf("(%s, %s)", t.Status, t.Priority),
	}
	if t.AssigneeID != "" {
		parts = append(parts, "@"+opts.Names.User(t.AssigneeID))
	}
	if p := t.Progress(); p.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", p.Done, p.Total))
	}
	if due := DueLabel(t, opts.Now); due != "" {
		if t.IsOverdue(opts.Now) {
			due = opts.Styles.Overdue.Render(due)
		}
		parts = append(parts, due)
	}
	return strings.Join(parts, " ")
}

// DueLabel renders a due date relative to now ("due 3 days from now"), or ""
// when the task has none.
func DueLabel(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}
	return "due " + humanize.RelTime(*t.DueDate, now, "ago", "from now")
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

package board

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour renderers are slow to build; keep one per wrap width.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders a task description as terminal markdown. The raw
// text is returned when rendering fails.
func RenderDescription(description string, width int) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	renderer, err := markdownRenderer(width)
	if err != nil {
		return description
	}
	out, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(out)
}

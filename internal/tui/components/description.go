package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type DescriptionProps struct {
	Markdown string
	Width    int
}

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	style := "dark"
	if scheme.Preset == "monochrome" {
		style = "notty"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders markdown for the terminal, falling back to the
// raw text when glamour fails.
func RenderMarkdown(props DescriptionProps) string {
	if strings.TrimSpace(props.Markdown) == "" {
		return SubtleStyle.Render("No description")
	}

	renderer, err := getRenderer(props.Width)
	if err != nil {
		return props.Markdown
	}
	rendered, err := renderer.Render(props.Markdown)
	if err != nil {
		return props.Markdown
	}
	return strings.TrimSpace(rendered)
}

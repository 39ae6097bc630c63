package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// ContentRenderer turns scene text into terminal output.
type ContentRenderer func(string) (string, error)

// NewRenderer returns a ContentRenderer that renders markdown using glamour.
// It wraps at the given width and detects light/dark backgrounds.
func NewRenderer(width int) ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return "", err
		}
		return strings.Trim(out, "\n"), nil
	}
}

// PlainRenderer returns the text unchanged.
func PlainRenderer(text string) (string, error) {
	return text, nil
}

package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the interactive surfaces.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Tip       lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c084fc")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa")),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#facc15")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		Tip:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#38bdf8")),
	}
}

// PlainStyles returns styles that render text unchanged, for pipes and tests.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Header: s, Highlight: s, Muted: s, Success: s, Warning: s, Error: s, Tip: s}
}

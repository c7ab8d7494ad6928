package render

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6B7280")
	alert  = lipgloss.Color("#E53935")
	border = lipgloss.Color("#2A3850")
)

// Styles groups the lipgloss styles used by a Renderer.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Changing lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
}

// DefaultStyles returns the terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Heading:  lipgloss.NewStyle().Bold(true).Underline(true),
		Label:    lipgloss.NewStyle().Bold(true),
		Body:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		Changing: lipgloss.NewStyle().Foreground(alert).Bold(true),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(border),
	}
}

// PlainStyles renders without any decoration. Tests and pipes use it.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	padded := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:    plain,
		Heading:  plain,
		Label:    plain,
		Body:     plain,
		Muted:    plain,
		Changing: plain,
		Header:   padded,
		Cell:     padded,
		Border:   plain,
	}
}

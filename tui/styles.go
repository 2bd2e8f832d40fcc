package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7280")
	destructive = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles of the contacts screen.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Row:      lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:    lipgloss.NewStyle().Width(8).Foreground(muted),
		Focused:  lipgloss.NewStyle().Width(8).Bold(true).Foreground(accent),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}

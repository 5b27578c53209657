package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups every lipgloss style the dashboard renders with.
type Styles struct {
	Title   lipgloss.Style
	Count   lipgloss.Style
	Search  lipgloss.Style
	Muted   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Content lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Search:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Content: lipgloss.NewStyle().Padding(0, 1),
	}
}

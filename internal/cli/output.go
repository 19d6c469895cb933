package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title lipgloss.Style
	Faint lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Faint: lipgloss.NewStyle().Faint(true),
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

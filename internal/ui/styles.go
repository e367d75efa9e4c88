package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("205")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
)

var (
	StatusStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	PromptStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	ConfirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)
)

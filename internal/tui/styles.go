package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#00FF41")
	colorPurple = lipgloss.Color("#C084FC")
	colorDim    = lipgloss.Color("#6B7280")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	DimmedStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	CursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15")).
			Bold(true)

	MarkerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	PIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	NameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	MemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	PortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// CPU heat colors: hot above 50%, warm above 10%, idle otherwise.
	CPUHotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	CPUWarmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	CPUIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ConfirmBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(1, 3).
			Align(lipgloss.Center)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func cpuStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 50:
		return CPUHotStyle
	case percent > 10:
		return CPUWarmStyle
	default:
		return CPUIdleStyle
	}
}

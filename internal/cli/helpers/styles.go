package helpers

import "github.com/charmbracelet/lipgloss"

var (
	// HeadingStyle marks section headings in table output.
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	// ErrorStyle marks the final error line.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	// HintStyle marks remediation advice.
	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

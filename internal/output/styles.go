package output

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("241")
	ColorLabel     = lipgloss.Color("39")

	headerStyle = lipgloss.NewStyle().Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorLabel)
	DimStyle    = lipgloss.NewStyle().Foreground(ColorSecondary)
)

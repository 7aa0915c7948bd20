package views

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
const (
	colourMauve    = "#cba6f7"
	colourRed      = "#f38ba8"
	colourPeach    = "#fab387"
	colourYellow   = "#f9e2af"
	colourGreen    = "#a6e3a1"
	colourBlue     = "#89b4fa"
	colourLavender = "#b4befe"
	colourText     = "#cdd6f4"
	colourSubtext0 = "#a6adc8"
	colourOverlay0 = "#6c7086"
	colourSurface1 = "#45475a"
	colourSurface0 = "#313244"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourMauve)).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourLavender)).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourSubtext0)).
			Italic(true)

	unitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourOverlay0))

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colourOverlay0)).
			Padding(0, 1)

	focusedFieldStyle = fieldStyle.
				BorderForeground(lipgloss.Color(colourMauve))

	frozenFieldStyle = fieldStyle.
				BorderForeground(lipgloss.Color(colourSurface1)).
				Foreground(lipgloss.Color(colourSubtext0))

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colourBlue)).
			Background(lipgloss.Color(colourSurface0))

	popupItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourText)).
			Padding(0, 1)

	popupSelectedStyle = popupItemStyle.
				Foreground(lipgloss.Color(colourSurface0)).
				Background(lipgloss.Color(colourBlue)).
				Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourPeach))

	amountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourGreen)).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colourRed)).
			Bold(true).
			Padding(1)
)

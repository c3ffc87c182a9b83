// ABOUTME: Defines lipgloss styles for the terminal chart: segment classes, user line, grid, labels and status bar.
// ABOUTME: Provides StyleForClass to map scene classes to their display styles.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Segment classes
	PrimaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	SecondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	UserStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	// Chart furniture
	GridStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	AxisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	PromptStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("39")).
			Foreground(lipgloss.Color("231"))
	CursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	CompletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// StyleForClass returns the style for a canvas cell class.
func StyleForClass(class string) lipgloss.Style {
	switch class {
	case "primary":
		return PrimaryStyle
	case "secondary":
		return SecondaryStyle
	case "user":
		return UserStyle
	case "grid":
		return GridStyle
	case "axis":
		return AxisStyle
	case "label":
		return LabelStyle
	case "prompt":
		return PromptStyle
	case "cursor":
		return CursorStyle
	default:
		return lipgloss.NewStyle()
	}
}

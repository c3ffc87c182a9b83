// ABOUTME: Implements a single-line status bar for the bottom of the TUI showing drawing progress.
// ABOUTME: Displays the dataset title, draw state, share of years drawn and the latest message.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/youdrawit/chart"
)

// StatusBarModel displays chart status in a single line.
type StatusBarModel struct {
	title    string
	state    chart.DrawState
	coverage float64
	revealed bool
	message  string
	width    int
}

// NewStatusBarModel creates a status bar for the named dataset.
func NewStatusBarModel(title string) StatusBarModel {
	return StatusBarModel{title: title}
}

// SetProgress records the drawing state and coverage.
func (m *StatusBarModel) SetProgress(state chart.DrawState, coverage float64) {
	m.state = state
	m.coverage = coverage
}

// SetRevealed marks the result as shown.
func (m *StatusBarModel) SetRevealed(revealed bool) {
	m.revealed = revealed
}

// SetMessage sets a transient message.
func (m *StatusBarModel) SetMessage(msg string) {
	m.message = msg
}

// SetWidth sets the available width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar.
func (m StatusBarModel) View() string {
	state := m.state.String()
	if m.revealed {
		state = CompletedStyle.Render("revealed")
	} else if m.state == chart.StateCompleted {
		state = CompletedStyle.Render(state)
	}

	content := fmt.Sprintf("%s | %s | %d%% drawn", m.title, state, int(m.coverage*100+0.5))
	if m.message != "" {
		content += " | " + m.message
	}

	style := StatusBarStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return lipgloss.NewStyle().Inline(true).Render(style.Render(content))
}

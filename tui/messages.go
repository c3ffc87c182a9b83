// ABOUTME: Bubble Tea message types and commands used in the terminal chart's message loop.
// ABOUTME: Resize messages carry a sequence number so only the last one in a burst triggers a redraw.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent periodically while the reveal animation runs.
type TickMsg struct {
	Time time.Time
}

// ResizeMsg fires after the resize debounce interval.
type ResizeMsg struct {
	Seq int
}

// TickCmd returns a command that sends a TickMsg after the given interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// ResizeCmd returns a command that sends a ResizeMsg for seq after wait.
func ResizeCmd(seq int, wait time.Duration) tea.Cmd {
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return ResizeMsg{Seq: seq}
	})
}

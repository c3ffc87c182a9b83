// ABOUTME: Tests for StatusBarModel which renders the single-line chart status.
package tui

import (
	"strings"
	"testing"

	"github.com/2389-research/youdrawit/chart"
)

func TestStatusBarView(t *testing.T) {
	tests := []struct {
		name     string
		state    chart.DrawState
		coverage float64
		revealed bool
		message  string
		want     []string
	}{
		{name: "idle", state: chart.StateIdle, want: []string{"Unemployment", "idle", "0% drawn"}},
		{name: "drawing", state: chart.StateDrawing, coverage: 2.0 / 3, want: []string{"drawing", "67% drawn"}},
		{name: "completed", state: chart.StateCompleted, coverage: 1, message: "press enter", want: []string{"completed", "100% drawn", "press enter"}},
		{name: "revealed", state: chart.StateCompleted, coverage: 1, revealed: true, want: []string{"revealed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatusBarModel("Unemployment")
			m.SetProgress(tt.state, tt.coverage)
			m.SetRevealed(tt.revealed)
			m.SetMessage(tt.message)
			view := m.View()
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("View() = %q, missing %q", view, w)
				}
			}
		})
	}
}

func TestStatusBarWidth(t *testing.T) {
	m := NewStatusBarModel("x")
	m.SetWidth(40)
	if m.width != 40 {
		t.Errorf("width = %d, want 40", m.width)
	}
}

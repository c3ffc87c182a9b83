// ABOUTME: Key bindings for the terminal chart, exposed to the bubbles help component.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the chart's key bindings.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Draw   key.Binding
	Reveal key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "higher")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "lower")),
		Draw:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "draw here")),
		Reveal: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show result")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Reveal, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Draw, k.Reveal},
		{k.Help, k.Quit},
	}
}

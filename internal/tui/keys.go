package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Choose    key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Invert    key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Choose:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
	ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
	Invert:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invert")),
	Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

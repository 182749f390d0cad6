package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open    key.Binding
	Close   key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Next    key.Binding
	Back    key.Binding
	Reset   key.Binding
	Another key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "]"),
			key.WithHelp("enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("[", "ctrl+b"),
			key.WithHelp("[", "back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Another: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "start another"),
		),
	}
}

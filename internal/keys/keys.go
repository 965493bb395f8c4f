// Package keys contains keybinding definitions for the operator console.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Query line
	Accept key.Binding // take the book suggestion
	Submit key.Binding

	// Presentation
	CycleVersion key.Binding
	SwitchMode   key.Binding
	Blank        key.Binding

	// General
	Help  key.Binding
	Logs  key.Binding
	Close key.Binding
	Quit  key.Binding
}

// Console is the active key map.
var Console = DefaultKeyMap()

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous slide"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next slide"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion / switch pane"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		CycleVersion: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "next version"),
		),
		SwitchMode: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "scripture / songs"),
		),
		Blank: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "blank projector"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "debug log"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status line hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.SwitchMode, k.CycleVersion, k.Blank, k.Help, k.Quit}
}

// FullHelp returns keybindings grouped for the help screen.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Accept, k.Submit},
		{k.CycleVersion, k.SwitchMode, k.Blank},
		{k.Help, k.Logs, k.Quit},
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	Preview     key.Binding
	CycleMode   key.Binding
	CycleLegacy key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Preview: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "preview sound"),
		),
		CycleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "cycle on/off/auto"),
		),
		CycleLegacy: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "cycle legacy setting"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

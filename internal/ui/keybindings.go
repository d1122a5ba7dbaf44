package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the viewer key bindings
type KeyMap struct {
	// Global bindings
	Quit key.Binding
	Help key.Binding

	// Navigation bindings
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	NextMsg    key.Binding
	PrevMsg    key.Binding

	// Display bindings
	ToggleTokens key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("pgdn/f", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		NextMsg: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next message"),
		),
		PrevMsg: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "previous message"),
		),
		ToggleTokens: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle counts"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrollDown, k.NextMsg, k.ToggleTokens, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Home, k.End, k.NextMsg, k.PrevMsg},
		{k.ToggleTokens, k.Help, k.Quit},
	}
}

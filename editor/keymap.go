package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Up and Down only act while a suggestion popup is open.
type KeyMap struct {
	Left, Right key.Binding
	Up, Down    key.Binding

	Backspace key.Binding
	Enter     key.Binding
	Accept    key.Binding
	Leave     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "ctrl+b"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right", "ctrl+f"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous suggestion")),
		Down:  key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next suggestion")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline / pick")),
		Accept:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pick suggestion")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave mention")),
	}
}

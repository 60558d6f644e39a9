package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the voting screen.
type keyMap struct {
	SwitchMode key.Binding
	Next       key.Binding
	Confirm    key.Binding
	Cycle      key.Binding
	Backspace  key.Binding
	Up         key.Binding
	Down       key.Binding
	Undo       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SwitchMode: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "switch mode")),
		Next:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next field")),
		Confirm:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "cast ballot")),
		Cycle:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next match")),
		Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Undo:       key.NewBinding(key.WithKeys("delete", "backspace", "d", "x"), key.WithHelp("d/del", "undo paper")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// modeHelp adapts the key map to bubbles/help for the active mode.
type modeHelp struct {
	keys keyMap
	mode Mode
}

func (h modeHelp) ShortHelp() []key.Binding {
	if h.mode == ModeReviewing {
		return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Undo, h.keys.SwitchMode, h.keys.Quit}
	}
	return []key.Binding{h.keys.Next, h.keys.Cycle, h.keys.Confirm, h.keys.SwitchMode, h.keys.Quit}
}

func (h modeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

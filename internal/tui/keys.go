package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New        key.Binding
	Regenerate key.Binding
	Theme      key.Binding
	Type       key.Binding
	Flip       key.Binding
	History    key.Binding
	Clear      key.Binding
	AI         key.Binding
	Up         key.Binding
	Down       key.Binding
	Restore    key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new message")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Type:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "occasion")),
		Flip:       key.NewBinding(key.WithKeys("f", " "), key.WithHelp("f/space", "flip")),
		History:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear history")),
		AI:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AI message")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Restore:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "restore")),
		Back:       key.NewBinding(key.WithKeys("esc", "h"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// cardHelp satisfies help.KeyMap for the card screen
type cardHelp struct{ keyMap }

func (k cardHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Regenerate, k.Theme, k.Type, k.Flip, k.History, k.Clear, k.AI, k.Quit}
}

func (k cardHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// historyHelp satisfies help.KeyMap for the history list
type historyHelp struct{ keyMap }

func (k historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Restore, k.Clear, k.Back, k.Quit}
}

func (k historyHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

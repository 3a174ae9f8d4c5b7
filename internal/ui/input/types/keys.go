package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the normal mode bindings. It doubles as the help.KeyMap
// rendered in the footer.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Home   key.Binding
	End    key.Binding
	Add    key.Binding
	Delete key.Binding
	Clear  key.Binding
	Start  key.Binding
	Log    key.Binding
	Help   key.Binding
	Quit   key.Binding
	Force  key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Home:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	End:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Add:    key.NewBinding(key.WithKeys("o", "a"), key.WithHelp("o/a", "add file")),
	Delete: key.NewBinding(key.WithKeys("x", "d", "delete"), key.WithHelp("x/d", "remove")),
	Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Start:  key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s/enter", "run OCR")),
	Log:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "view log")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Force:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Start, k.Log, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		{k.Add, k.Delete, k.Clear},
		{k.Start, k.Log},
		{k.Help, k.Quit, k.Force},
	}
}

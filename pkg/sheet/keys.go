package sheet

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the sheet key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Edit        key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	Copy        key.Binding
	Paste       key.Binding
	PasteSystem key.Binding
	CopyRow     key.Binding
	Jump        key.Binding
	Fill        key.Binding
	SelectRow   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		Right:       key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "move right")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first row")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last row")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e", "f2"), key.WithHelp("enter", "edit cell / finish fill")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit edit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit, fill or copy")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
		Paste:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste copied cell")),
		PasteSystem: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "paste system clipboard")),
		CopyRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row as markdown")),
		Jump:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to column")),
		Fill:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "start drag-fill")),
		SelectRow:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle row selection")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindings lists the bindings shown in the help screen.
func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom,
		k.Edit, k.Cancel, k.Copy, k.Paste, k.PasteSystem, k.CopyRow, k.Jump,
		k.Fill, k.SelectRow, k.Help, k.Quit,
	}
}

package cli

import "github.com/charmbracelet/bubbles/key"

// boardKeyMap holds the key bindings for the board view.
type boardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	DueEarlier  key.Binding
	DueLater    key.Binding
	StartLater  key.Binding
	StartSooner key.Binding
	Group       key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Edit        key.Binding
	Add         key.Binding
	Delete      key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "select")),
		Down:        key.NewBinding(key.WithKeys("down", "j")),
		MoveLeft:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h/l", "move")),
		MoveRight:   key.NewBinding(key.WithKeys("l")),
		DueEarlier:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H/L", "due")),
		DueLater:    key.NewBinding(key.WithKeys("L")),
		StartSooner: key.NewBinding(key.WithKeys("<"), key.WithHelp("</>", "start")),
		StartLater:  key.NewBinding(key.WithKeys(">")),
		Group:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group")),
		ZoomIn:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "zoom")),
		ZoomOut:     key.NewBinding(key.WithKeys("-")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// shortHelp lists the bindings shown in the bottom bar, in display order.
// Bindings without help text are paired with a sibling above.
func (k boardKeyMap) shortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.MoveLeft, k.DueEarlier, k.StartSooner,
		k.Group, k.ZoomIn, k.Edit, k.Add, k.Delete, k.Refresh, k.Quit,
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type studyKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Describe key.Binding
	Reset    key.Binding
	Language key.Binding
	Manage   key.Binding
	Quit     key.Binding
}

func (k studyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Describe, k.Reset, k.Language, k.Manage, k.Quit}
}

func (k studyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newStudyKeys() studyKeyMap {
	return studyKeyMap{
		Next:     key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "next")),
		Prev:     key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←", "previous")),
		Describe: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "description")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Language: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "language")),
		Manage:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manage")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Edit     key.Binding
	Add      key.Binding
	Hide     key.Binding
	Delete   key.Binding
	Restore  key.Binding
	Language key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Edit, k.Add, k.Hide, k.Delete, k.Restore, k.Language, k.Back}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp(), {k.Quit}}
}

func newListKeys() listKeyMap {
	return listKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Hide:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide/show")),
		Delete:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Restore:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restore defaults")),
		Language: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "language")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "study")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type formKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Save      key.Binding
	Delete    key.Binding
	Cancel    key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Toggle, k.Save, k.Delete, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newFormKeys() formKeyMap {
	return formKeyMap{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle hidden")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

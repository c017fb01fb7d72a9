package panel

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browse-mode bindings
type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Dashboard key.Binding
	Users     key.Binding
	Orders    key.Binding
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Search    key.Binding
	Filter    key.Binding
	Filter2   key.Binding
	View      key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Logout    key.Binding
	Help      key.Binding
	Quit      key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
		Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Users:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "users")),
		Orders:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "orders")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "]"), key.WithHelp("→/l", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "["), key.WithHelp("←/h", "prev page")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Filter2:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "cycle status")),
		View:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "cancel")),
		Back:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Search, k.Filter, k.New, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Dashboard, k.Users, k.Orders},
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Search, k.Filter, k.Filter2, k.Refresh},
		{k.View, k.New, k.Edit, k.Delete},
		{k.Logout, k.Help, k.Quit},
	}
}

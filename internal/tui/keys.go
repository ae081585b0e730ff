package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	search  key.Binding
	add     key.Binding
	edit    key.Binding
	mark    key.Binding
	remove  key.Binding
	preview key.Binding
	reload  key.Binding
	quit    key.Binding
	submit  key.Binding
	cancel  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add file"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit description"),
		),
		mark: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "mark"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		preview: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "preview"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.preview, k.search, k.add, k.edit, k.remove}
}

func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{k.preview, k.search, k.add, k.edit, k.mark, k.remove, k.reload}
}

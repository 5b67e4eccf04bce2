package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Hit    key.Binding
	Stand  key.Binding
	Double key.Binding
	Split  key.Binding
	Deal   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hit: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hit"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stand"),
		),
		Double: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "double down"),
		),
		Split: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "split"),
		),
		Deal: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "next deal"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.Double, k.Split, k.Deal, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stand, k.Double, k.Split},
		{k.Deal, k.Help, k.Quit},
	}
}

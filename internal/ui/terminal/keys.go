package terminal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	BreakNow  key.Binding
	Skip      key.Binding
	AddOne    key.Binding
	AddFive   key.Binding
	PauseHour key.Binding
	PauseAll  key.Binding
	Resume    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		BreakNow:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break now")),
		Skip:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip break")),
		AddOne:    key.NewBinding(key.WithKeys("1", "+"), key.WithHelp("1", "+1 min")),
		AddFive:   key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "+5 min")),
		PauseHour: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause 1h")),
		PauseAll:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "pause until resume")),
		Resume:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.BreakNow, keys.Skip, keys.AddOne, keys.Help, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.BreakNow, keys.Skip},
		{keys.AddOne, keys.AddFive},
		{keys.PauseHour, keys.PauseAll, keys.Resume},
		{keys.Help, keys.Quit},
	}
}

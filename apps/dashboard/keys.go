package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Press  key.Binding
	Fetch  key.Binding
	Detect key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Press:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press")),
		Fetch:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "fetch NDVI")),
		Detect: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "detect")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Press, k.Fetch, k.Detect, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press},
		{k.Fetch, k.Detect, k.Quit},
	}
}

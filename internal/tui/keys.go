package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Cancel key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Quit}
}

func (k keyMap) selectorHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, withHelp(k.Select, "space", "toggle"), withHelp(k.Cancel, "esc", "done"), k.Quit}
}

func (k keyMap) boardHelp(dragging bool) []key.Binding {
	if dragging {
		return []key.Binding{k.Up, k.Down, withHelp(k.Select, "enter", "drop"), withHelp(k.Cancel, "esc", "cancel"), k.Reset, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, withHelp(k.Select, "enter", "pick up"), k.Reset, k.Quit}
}

func (k keyMap) overHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Reset, k.Quit}
}

func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}

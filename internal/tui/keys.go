package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	NextWidget key.Binding
	PrevWidget key.Binding
	Grab       key.Binding
	Remove     key.Binding
	Manage     key.Binding
	Period     key.Binding
	Move       key.Binding
	Resize     key.Binding
	UpperUp    key.Binding
	UpperDown  key.Binding
	LowerUp    key.Binding
	LowerDown  key.Binding
	Commit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextWidget: key.NewBinding(key.WithKeys("tab", "j"), key.WithHelp("tab", "next widget")),
		PrevWidget: key.NewBinding(key.WithKeys("shift+tab", "k"), key.WithHelp("s-tab", "prev widget")),
		Grab:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab/release")),
		Remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove widget")),
		Manage:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manage widgets")),
		Period:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		Move:       key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("arrows", "move")),
		Resize:     key.NewBinding(key.WithKeys("+", "-", ">", "<"), key.WithHelp("+/-/</>", "resize")),
		UpperUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "max amount up")),
		UpperDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "max amount down")),
		LowerUp:    key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "min amount up")),
		LowerDown:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "min amount down")),
		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit range")),
	}
}

func (k keyMap) footerBindings(grabbed bool) []key.Binding {
	if grabbed {
		return []key.Binding{k.Move, k.Resize, k.Grab, k.Quit}
	}
	return []key.Binding{k.NextWidget, k.Grab, k.Remove, k.Manage, k.Period, k.Refresh, k.Quit}
}

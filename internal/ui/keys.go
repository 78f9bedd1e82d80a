package ui

import (
	"github.com/charmbracelet/bubbles/key"

	inputtypes "nexventory/internal/ui/input/types"
)

// keyMap holds the bindings advertised in the footer. Dispatch itself is
// done by the input modes; these only describe it.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Perms   key.Binding
	Regions key.Binding
	Filter  key.Binding
	Command key.Binding
	Sort    key.Binding
	Export  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Switch  key.Binding
	Mark    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Submit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Perms:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "permissions")),
		Regions: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regions")),
		Filter:  key.NewBinding(key.WithKeys("F", "ctrl+f"), key.WithHelp("F", "filter")),
		Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "/adm")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Export:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Switch:  key.NewBinding(key.WithKeys("tab", "h", "l"), key.WithHelp("tab", "switch list")),
		Mark:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		Add:     key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "add")),
		Remove:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "remove")),
		Save:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	}
}

// ShortHelp returns the bindings relevant to mode
func (k keyMap) ShortHelp(mode inputtypes.Mode) []key.Binding {
	switch mode {
	case inputtypes.ModeSelector:
		return []key.Binding{k.Switch, k.Mark, k.Add, k.Remove, k.Save, k.Cancel}
	case inputtypes.ModeFilter, inputtypes.ModeCommand:
		return []key.Binding{k.Submit, k.Cancel}
	case inputtypes.ModeSort, inputtypes.ModeConfirm:
		return nil
	default:
		return []key.Binding{k.Up, k.Down, k.Perms, k.Regions, k.Filter, k.Command, k.Sort, k.Help, k.Quit}
	}
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nibzard/todoapp/internal/config"
)

// keyMap holds the widget bindings. It implements help.KeyMap.
type keyMap struct {
	List   key.Binding
	Add    key.Binding
	Delete key.Binding
	Quit   key.Binding
	Toggle key.Binding
	Remove key.Binding
	Clear  key.Binding
	Up     key.Binding
	Down   key.Binding
	Help   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func newKeyMap(keys config.KeyMap) keyMap {
	bind := func(action, desc string) key.Binding {
		ks := keys.Get(action)
		if len(ks) == 0 {
			ks = config.DefaultKeys().Get(action)
		}
		return key.NewBinding(key.WithKeys(ks...), key.WithHelp(helpLabel(ks), desc))
	}
	return keyMap{
		List:   bind(config.ActionList, "list"),
		Add:    bind(config.ActionAdd, "new"),
		Delete: bind(config.ActionDelete, "delete"),
		Quit:   bind(config.ActionQuit, "quit"),
		Toggle: bind(config.ActionToggle, "done"),
		Remove: bind(config.ActionRemove, "remove"),
		Clear:  bind(config.ActionClear, "clear console"),
		Up:     bind(config.ActionUp, "up"),
		Down:   bind(config.ActionDown, "down"),
		Help:   bind(config.ActionHelp, "help"),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.List, k.Add, k.Delete, k.Toggle, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.List, k.Add, k.Delete, k.Quit},
		{k.Up, k.Down, k.Toggle, k.Remove},
		{k.Submit, k.Cancel, k.Clear, k.Help},
	}
}

// global returns the bindings that stay active while the input line has focus.
func (k keyMap) global() []key.Binding {
	return []key.Binding{k.List, k.Add, k.Delete, k.Quit, k.Clear}
}

func helpLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, "/")
}

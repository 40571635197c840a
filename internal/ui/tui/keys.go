// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Sort     key.Binding
	Preset   key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Remove   key.Binding
	Help     key.Binding
	Quit     key.Binding
	PaneQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Sort:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "cycle sort")),
		Preset:   key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"), key.WithHelp("alt+1-9", "preset")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("a", " "), key.WithHelp("a", "abstract")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		PaneQuit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Sort, k.Preset, k.Save, k.Remove, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Sort, k.Preset},
		{k.Up, k.Down, k.Toggle, k.Save, k.Remove},
		{k.Help, k.Quit, k.PaneQuit},
	}
}

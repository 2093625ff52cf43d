// SPDX-License-Identifier: MIT

package panel

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the panel shortcuts.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Create    key.Binding
	Edit      key.Binding
	Save      key.Binding
	Export    key.Binding
	Labels    key.Binding
	Indexes   key.Binding
	Bigger    key.Binding
	Smaller   key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap is the panel's key layout.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all/none"),
	),
	Create: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "create layer"),
	),
	Edit: key.NewBinding(
		key.WithKeys("p", "/"),
		key.WithHelp("p", "edit place"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Labels: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "labels"),
	),
	Indexes: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "indexes"),
	),
	Bigger: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "size up"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "size down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.SelectAll, k.Create, k.Edit, k.Save, k.Export, k.Labels, k.Indexes, k.Quit}
}

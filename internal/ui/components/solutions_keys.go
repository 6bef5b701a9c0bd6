// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/charmbracelet/bubbles/key"

// SolutionKeyMap defines the key bindings of the card list.
type SolutionKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Toggle    key.Binding
	Copy      key.Binding
	Procedure key.Binding
}

// DefaultSolutionKeyMap returns the default card list bindings.
func DefaultSolutionKeyMap() SolutionKeyMap {
	return SolutionKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev card"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next card"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next card"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev card"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "expand/collapse"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Procedure: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "full procedure"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k SolutionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Toggle, k.Copy, k.Procedure}
}

// FullHelp returns bindings for the full help view.
func (k SolutionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Toggle, k.Copy, k.Procedure},
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/rigdiag/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the shell-level keyboard bindings. Card bindings live on
// the card list.
type KeyMap struct {
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Close    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default shell bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to bottom"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("Esc/q", "close procedure"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q/C-c", "quit"),
		),
	}
}

// helpKeys joins shell and card bindings for bubbles/help.
type helpKeys struct {
	shell KeyMap
	cards components.SolutionKeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.cards.ShortHelp(), h.shell.Help, h.shell.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.cards.FullHelp(),
		[]key.Binding{h.shell.PageUp, h.shell.PageDown, h.shell.Home, h.shell.End},
		[]key.Binding{h.shell.Help, h.shell.Quit},
	)
}

// overlayKeys are shown while the procedure overlay is open.
type overlayKeys struct {
	shell KeyMap
}

func (o overlayKeys) ShortHelp() []key.Binding {
	return []key.Binding{o.shell.PageUp, o.shell.PageDown, o.shell.Close}
}

func (o overlayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{o.ShortHelp()}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the rigdiag TUI.

# Components

SolutionList (solutions.go, solutions_view.go) - Ranked solution cards with
independent expand and collapse, animated disclosure, compact citations, a
copy action and a link to the full procedure.

Header (header.go) - One-row title bar with compact and reduced-motion badges.

Clipboard (clipboard.go) - System clipboard access behind an interface so
tests can substitute it.

# Bubble Tea Integration

SolutionList is driven by its owner's Update loop. Messages it emits carry
the list id, so several lists can share one program:

	list := components.NewSolutionList(solutions, components.SolutionListOptions{
		Theme: theme,
		Width: 100,
	})
	defer list.Close()

	cmd := list.Update(msg)
	view := list.View()

Animation frames are scheduled with tea.Tick only while a card is moving.
*/
package components

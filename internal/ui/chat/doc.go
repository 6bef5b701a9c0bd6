// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the diagnostic chat shell for the rigdiag TUI.

The shell is a thin host around the solution card list:

  - Header line with the application title
  - Transcript viewport: the user's question, the assistant's lead-in and
    the card list, scrolled with bubbles/viewport
  - Notice line for transient copy results
  - Help footer rendered by bubbles/help

# Layout

Compact card layout is derived from the terminal width when the mode is auto:
a terminal is compact when cols * cellWidth is below the breakpoint (768 px
at 8 px per column, i.e. 96 columns).

# Input

Mouse presses are translated from screen rows into card list rows, taking the
header and the viewport scroll offset into account. Keys not used by the
shell go to the card list.

# Procedure Overlay

"View full procedure" opens the solution as glamour-rendered markdown in its
own viewport. Esc or q closes it.
*/
package chat

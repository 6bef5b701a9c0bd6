// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/ui/components"
	"github.com/jeranaias/rigdiag/internal/ui/styles"
)

// CompactMode selects how the compact card layout is chosen.
type CompactMode string

const (
	CompactAuto CompactMode = "auto"
	CompactOn   CompactMode = "on"
	CompactOff  CompactMode = "off"
)

// ParseCompactMode parses a compact mode. The empty string is auto.
func ParseCompactMode(s string) (CompactMode, error) {
	switch CompactMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CompactAuto:
		return CompactAuto, nil
	case CompactOn, "true", "1", "yes":
		return CompactOn, nil
	case CompactOff, "false", "0", "no":
		return CompactOff, nil
	default:
		return CompactAuto, fmt.Errorf("invalid compact mode %q: must be auto, on, or off", s)
	}
}

// Default layout constants.
const (
	DefaultCompactBreakpoint = 768
	DefaultCellWidth         = 8
)

// IsCompact reports whether a terminal of cols columns is narrower than the
// breakpoint, measured in pixels at cellWidth pixels per column.
func IsCompact(cols, cellWidth, breakpoint int) bool {
	return cols*cellWidth < breakpoint
}

// Options configures the chat shell.
type Options struct {
	Theme             *styles.Theme
	Logger            *log.Logger
	Compact           CompactMode
	CompactBreakpoint int
	CellWidth         int
	// Init runs when the program starts, e.g. the command returned by
	// SolutionList.Watch.
	Init tea.Cmd
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the diagnostic chat: a question, the
// assistant's reply and its solution cards.
type Model struct {
	conversation *model.Conversation
	list         *components.SolutionList

	header   *components.Header
	viewport viewport.Model
	help     help.Model
	keys     KeyMap
	theme    *styles.Theme
	logger   *log.Logger

	compactMode CompactMode
	breakpoint  int
	cellWidth   int

	width  int
	height int
	ready  bool

	// listTop is the transcript row where the card list starts.
	listTop int

	procedure *procedureView

	initCmd tea.Cmd
}

// New creates the chat shell. The list must show the solutions of the
// conversation's last assistant message.
func New(conv *model.Conversation, list *components.SolutionList, opts Options) *Model {
	m := &Model{
		conversation: conv,
		list:         list,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		theme:        opts.Theme,
		logger:       opts.Logger,
		compactMode:  opts.Compact,
		breakpoint:   opts.CompactBreakpoint,
		cellWidth:    opts.CellWidth,
		initCmd:      opts.Init,
	}
	if m.theme == nil {
		m.theme = styles.NewTheme()
	}
	m.header = components.NewHeader(m.theme)
	m.header.Title = Title
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.compactMode == "" {
		m.compactMode = CompactAuto
	}
	if m.breakpoint <= 0 {
		m.breakpoint = DefaultCompactBreakpoint
	}
	if m.cellWidth <= 0 {
		m.cellWidth = DefaultCellWidth
	}
	m.applyCompact()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// List returns the card list.
func (m *Model) List() *components.SolutionList {
	return m.list
}

// ProcedureOpen reports whether the full-procedure overlay is showing.
func (m *Model) ProcedureOpen() bool {
	return m.procedure != nil
}

// applyCompact derives the card layout from the mode and terminal width.
func (m *Model) applyCompact() {
	var compact bool
	switch m.compactMode {
	case CompactOn:
		compact = true
	case CompactOff:
	default:
		compact = m.width > 0 && IsCompact(m.width, m.cellWidth, m.breakpoint)
	}
	if compact != m.list.Compact() {
		m.logger.Debug("card layout changed", "compact", compact, "cols", m.width)
	}
	m.list.SetCompact(compact)
}

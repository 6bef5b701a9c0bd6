// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigdiag/internal/ui/components"
)

// Rows taken by the header above the transcript and the notice and help
// lines below it.
const (
	headerRows = 1
	footerRows = 2
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case components.ProcedureMsg:
		m.procedure = newProcedureView(msg.Solution, m.contentWidth(), m.viewportHeight())
		m.logger.Debug("procedure opened", "solution", msg.Solution.ID)
		return m, nil
	}

	// Frames, copy results, notices and motion preferences belong to the list.
	cmd := m.list.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.applyCompact()
	m.list.SetWidth(m.contentWidth())

	if !m.ready {
		m.viewport = newViewport(m.contentWidth(), m.viewportHeight())
		m.ready = true
	} else {
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = m.viewportHeight()
	}
	if m.procedure != nil {
		m.procedure.resize(m.contentWidth(), m.viewportHeight())
	}
	m.refresh()
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) viewportHeight() int {
	h := m.height - headerRows - footerRows
	if h < 1 {
		h = 1
	}
	return h
}

// refresh re-renders the transcript into the viewport, keeping the scroll
// position.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	content, listTop := m.renderTranscript()
	m.listTop = listTop
	m.viewport.SetContent(content)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.procedure != nil {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.procedure = nil
			return nil
		case msg.String() == "ctrl+c":
			return tea.Quit
		}
		var cmd tea.Cmd
		m.procedure.viewport, cmd = m.procedure.viewport.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return nil
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return nil
	}

	cmd := m.list.Update(msg)
	m.refresh()
	return cmd
}

// handleMouse scrolls on the wheel and forwards presses to the card list in
// list coordinates.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.procedure != nil {
		var cmd tea.Cmd
		m.procedure.viewport, cmd = m.procedure.viewport.Update(msg)
		return cmd
	}

	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case tea.MouseLeft:
	default:
		return nil
	}

	row := msg.Y - headerRows
	if row < 0 || row >= m.viewport.Height {
		return nil
	}
	listRow := row + m.viewport.YOffset - m.listTop
	if listRow < 0 || listRow >= m.list.Height() {
		return nil
	}

	forwarded := msg
	forwarded.Y = listRow
	cmd := m.list.Update(forwarded)
	m.refresh()
	return cmd
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/ui/styles"
)

// Title is shown in the header line.
const Title = "rigdiag"

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.procedure != nil {
		b.WriteString(m.procedure.viewport.View())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderHeader() string {
	subtitle := "maintenance diagnostics"
	if m.procedure != nil {
		subtitle = "full procedure: " + m.procedure.solution.Title
	}
	m.header.Subtitle = subtitle
	m.header.Compact = m.list.Compact()
	m.header.ReducedMotion = m.list.ReducedMotion()
	m.header.SetWidth(m.contentWidth())
	return m.header.View()
}

func (m *Model) renderNotice() string {
	notice, isErr := m.list.Notice()
	if notice == "" {
		return ""
	}
	if isErr {
		return styles.RenderError(notice)
	}
	return styles.RenderSuccess(notice)
}

func (m *Model) renderHelp() string {
	if m.procedure != nil {
		return m.theme.Help.Render(m.help.View(overlayKeys{shell: m.keys}))
	}
	return m.theme.Help.Render(m.help.View(helpKeys{shell: m.keys, cards: m.list.KeyMap()}))
}

// renderTranscript draws the conversation and returns the row where the
// card list starts.
func (m *Model) renderTranscript() (string, int) {
	t := m.theme
	width := m.contentWidth()

	var lines []string
	listTop := -1
	for _, msg := range m.conversation.Messages() {
		switch msg.Role {
		case model.RoleUser:
			stamp := t.HeaderSubtitle.Render(msg.Role.DisplayName() + " · " + formatTimestamp(msg.Timestamp))
			bubble := t.UserBubble.MaxWidth(width).Width(bubbleWidth(width)).Render(msg.Content)
			lines = append(lines, stamp)
			lines = append(lines, strings.Split(bubble, "\n")...)
			lines = append(lines, "")
		case model.RoleAssistant:
			intro := lipgloss.NewStyle().Width(width).Render(t.AssistantText.Render(msg.Content))
			lines = append(lines, strings.Split(intro, "\n")...)
			lines = append(lines, "")
			if msg.HasSolutions() && listTop < 0 {
				listTop = len(lines)
				if view := m.list.View(); view != "" {
					lines = append(lines, strings.Split(view, "\n")...)
				}
				lines = append(lines, "")
			}
		}
	}
	if listTop < 0 {
		listTop = len(lines)
	}
	return strings.Join(lines, "\n"), listTop
}

// bubbleWidth leaves a margin on wide terminals and uses the full width on
// narrow ones.
func bubbleWidth(width int) int {
	w := width - 2
	if width > 60 {
		w = width * 3 / 4
	}
	if w < 10 {
		w = 10
	}
	return w
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdiag/internal/ui/styles"
	"github.com/jeranaias/rigdiag/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Single-row title bar
// =============================================================================

// Badge labels shown at the right edge of the header.
const (
	CompactBadge       = "COMPACT"
	ReducedMotionBadge = "REDUCED MOTION"
)

// Header is the one-row title bar of the chat view. Badges report the
// active layout and motion modes.
type Header struct {
	Title         string // Brand title (default: "rigdiag")
	Subtitle      string // Context, truncated to fit
	Width         int    // Available width
	Compact       bool
	ReducedMotion bool
	theme         *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return &Header{
		Title: "rigdiag",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// Badges returns the labels of the active modes in display order.
func (h *Header) Badges() []string {
	var badges []string
	if h.Compact {
		badges = append(badges, CompactBadge)
	}
	if h.ReducedMotion {
		badges = append(badges, ReducedMotionBadge)
	}
	return badges
}

// View renders the header as exactly one row of at most Width cells. The
// subtitle gives way first, then the badges.
func (h *Header) View() string {
	t := h.theme
	width := h.Width
	if width < 1 {
		width = 1
	}
	outer := width
	width -= t.Header.GetHorizontalPadding()
	if width < 1 {
		width = 1
	}

	brand := util.FitWidth(h.Title, width)
	used := util.StringWidth(brand)

	var badgeText string
	var badgeWidth int
	for _, b := range h.Badges() {
		cell := "[" + b + "]"
		if used+badgeWidth+1+util.StringWidth(cell) > width {
			break
		}
		badgeText += " " + h.badgeStyle(b).Render(cell)
		badgeWidth += 1 + util.StringWidth(cell)
	}

	var subtitle string
	if room := width - used - badgeWidth - 1; room > 0 && h.Subtitle != "" {
		subtitle = util.FitWidth(h.Subtitle, room)
	}

	line := t.HeaderTitle.Render(brand)
	lineWidth := used
	if subtitle != "" {
		line += " " + t.HeaderSubtitle.Render(subtitle)
		lineWidth += 1 + util.StringWidth(subtitle)
	}
	if badgeText != "" {
		line += strings.Repeat(" ", width-lineWidth-badgeWidth) + badgeText
	}
	return t.Header.Width(outer).MaxWidth(outer).MaxHeight(1).Render(line)
}

func (h *Header) badgeStyle(badge string) lipgloss.Style {
	color := styles.Purple
	if badge == ReducedMotionBadge {
		color = styles.Emerald
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

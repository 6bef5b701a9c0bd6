// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdiag/internal/model"
)

// =============================================================================
// CONFIDENCE BADGES
// =============================================================================

// BadgeStyle is the color triple of a confidence badge.
type BadgeStyle struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
}

var (
	badgeLow = BadgeStyle{
		Background: lipgloss.Color("#f3f4f6"),
		Foreground: lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#e5e7eb"),
	}
	badgeMedium = BadgeStyle{
		Background: lipgloss.Color("#dbeafe"),
		Foreground: lipgloss.Color("#1d4ed8"),
		Border:     lipgloss.Color("#93c5fd"),
	}
	badgeHigh = BadgeStyle{
		Background: lipgloss.Color("#dbeafe"),
		Foreground: lipgloss.Color("#1d4ed8"),
		Border:     lipgloss.Color("#3b82f6"),
	}
)

// ConfidenceBadge maps a confidence level to its badge colors.
// Unknown levels get the low badge.
func ConfidenceBadge(level model.Confidence) BadgeStyle {
	switch level {
	case model.ConfidenceHigh:
		return badgeHigh
	case model.ConfidenceMedium:
		return badgeMedium
	default:
		return badgeLow
	}
}

// Style returns a lipgloss style that draws the badge. The border is drawn
// as bracket-colored edges so the badge stays one row tall.
func (b BadgeStyle) Style() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(b.Foreground).
		Background(b.Background).
		Padding(0, 1)
}

// Render draws label inside the badge with border-colored brackets.
func (b BadgeStyle) Render(label string) string {
	edge := lipgloss.NewStyle().Foreground(b.Border)
	return edge.Render("[") + b.Style().Render(label) + edge.Render("]")
}

// =============================================================================
// STEP ICONS
// =============================================================================

// StepWarning, StepTip and StepNormal are the icon colors by step type.
var (
	StepWarning = lipgloss.Color("#f59e0b")
	StepTip     = lipgloss.Color("#3b82f6")
	StepNormal  = lipgloss.Color("#22c55e")
)

// StepIcon returns the ASCII icon of a step type.
func StepIcon(t model.StepType) string {
	switch t.Normalize() {
	case model.StepWarning:
		return StatusIndicators.Warning
	case model.StepTip:
		return StatusIndicators.Info
	default:
		return StatusIndicators.Success
	}
}

// StepColor returns the icon color of a step type.
func StepColor(t model.StepType) lipgloss.Color {
	switch t.Normalize() {
	case model.StepWarning:
		return StepWarning
	case model.StepTip:
		return StepTip
	default:
		return StepNormal
	}
}

// StepIconWidth is the widest step icon, used to align step text.
const StepIconWidth = 4

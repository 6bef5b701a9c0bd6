// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Metrics are the layout numbers that change between full and compact mode.
// Compact mode touches layout and truncation only.
type Metrics struct {
	// PaddingX is the horizontal padding inside an open card.
	PaddingX int
	// CollapsedPaddingX is the horizontal padding of a closed card.
	CollapsedPaddingX int
	// PaddingY is the blank rows above and below the card body.
	PaddingY int
	// StepIndent is the indent of step rows beyond the card padding.
	StepIndent int
	// FooterStacked puts the footer actions on separate rows.
	FooterStacked bool
	// CardGap is the blank rows between cards.
	CardGap int
}

// FullMetrics and CompactMetrics are the two layouts.
var (
	FullMetrics = Metrics{
		PaddingX:          2,
		CollapsedPaddingX: 2,
		PaddingY:          1,
		StepIndent:        2,
		CardGap:           1,
	}
	CompactMetrics = Metrics{
		PaddingX:          2,
		CollapsedPaddingX: 1,
		PaddingY:          0,
		StepIndent:        0,
		FooterStacked:     true,
		CardGap:           0,
	}
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width   int
	Height  int
	Compact bool
	Metrics Metrics

	// ==========================================================================
	// SHELL STYLES
	// ==========================================================================

	App            lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	UserBubble     lipgloss.Style
	AssistantText  lipgloss.Style
	Help           lipgloss.Style

	// ==========================================================================
	// CARD STYLES
	// ==========================================================================

	Card         lipgloss.Style
	CardExpanded lipgloss.Style
	CardTitle    lipgloss.Style
	Citation     lipgloss.Style
	Chevron      lipgloss.Style
	FooterLink   lipgloss.Style
	CopyButton   lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
}

// NewTheme creates a new theme from the detected terminal capabilities.
func NewTheme() *Theme {
	return NewThemeFor(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeFor creates a theme for an explicit profile and background.
func NewThemeFor(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Metrics:      FullMetrics,
	}
	t.initStyles()
	return t
}

// SetSize updates the layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// SetCompact switches between the full and compact layouts.
func (t *Theme) SetCompact(compact bool) {
	t.Compact = compact
	if compact {
		t.Metrics = CompactMetrics
	} else {
		t.Metrics = FullMetrics
	}
	t.initStyles()
}

// Hex resolves an adaptive color for this theme's background.
func (t *Theme) Hex(c lipgloss.AdaptiveColor) string {
	return Hex(c, t.IsDark)
}

// Faded returns c blended toward the card background.
func (t *Theme) Faded(c lipgloss.AdaptiveColor, opacity float64) lipgloss.Color {
	return Fade(t.Hex(c), t.Hex(CardBg), opacity)
}

// FadedColor is Faded for fixed colors.
func (t *Theme) FadedColor(c lipgloss.Color, opacity float64) lipgloss.Color {
	return Fade(string(c), t.Hex(CardBg), opacity)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	m := t.Metrics

	t.App = lipgloss.NewStyle()

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantText = lipgloss.NewStyle().
		Foreground(AssistantFg)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(CardBorder).
		Padding(0, m.CollapsedPaddingX)

	t.CardExpanded = t.Card.
		BorderForeground(CardBorderExpanded).
		Padding(0, m.PaddingX)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Citation = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Chevron = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FooterLink = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.CopyButton = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the rigdiag TUI.

# Color System (colors.go)

Chrome colors are Lip Gloss AdaptiveColor values so the UI follows the
terminal background:

	CardBg, CardBorder, Separator - solution card surfaces
	TextPrimary, TextSecondary    - titles and citations
	UserBubbleBg, UserBubbleFg    - the question bubble

# Confidence and Steps (confidence.go)

ConfidenceBadge maps a confidence level to fixed badge colors; unknown levels
get the low badge. StepIcon and StepColor give each step type an ASCII icon
so the meaning survives without color.

# Motion Helpers (animations.go)

Terminals cannot rotate or fade text. ChevronGlyph picks the glyph nearest to
a rotation and Fade blends a foreground toward the card background:

	color := theme.Faded(styles.TextPrimary, frame.Content.Opacity)

# Theme (theme.go)

Theme holds the resolved styles plus the layout Metrics, which switch between
FullMetrics and CompactMetrics:

	theme := styles.NewTheme()
	theme.SetCompact(width*cellWidth < breakpoint)
*/
package styles

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// CHEVRON
// =============================================================================

// ChevronGlyphs are the chevron positions between collapsed (0 degrees,
// pointing right) and expanded (90 degrees, pointing down).
var ChevronGlyphs = struct {
	Right    string
	Diagonal string
	Down     string
}{
	Right:    ">",
	Diagonal: "\\",
	Down:     "v",
}

// ChevronGlyph returns the glyph nearest to a rotation in degrees.
func ChevronGlyph(degrees float64) string {
	switch {
	case degrees < 22.5:
		return ChevronGlyphs.Right
	case degrees < 67.5:
		return ChevronGlyphs.Diagonal
	default:
		return ChevronGlyphs.Down
	}
}

// =============================================================================
// FADE
// =============================================================================

// Terminals have no alpha channel, so opacity is drawn by blending the
// foreground toward the background it sits on.

// Hex resolves an adaptive color for a background brightness.
func Hex(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}

// Fade blends fg toward bg. Opacity 1 returns fg unchanged and 0 returns bg.
// Unparseable colors are returned as-is.
func Fade(fg, bg string, opacity float64) lipgloss.Color {
	opacity = clamp01(opacity)
	if opacity >= 1 {
		return lipgloss.Color(fg)
	}
	if opacity <= 0 {
		return lipgloss.Color(bg)
	}
	from, err := colorful.Hex(fg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	to, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	return lipgloss.Color(to.BlendLab(from, opacity).Clamped().Hex())
}

// Invisible reports whether an opacity is too low to draw anything.
func Invisible(opacity float64) bool {
	return opacity <= 0.02
}

// RevealRows returns how many of total rows a height fraction shows.
// Any non-zero fraction shows at least one row.
func RevealRows(total int, fraction float64) int {
	if total <= 0 {
		return 0
	}
	fraction = clamp01(fraction)
	if fraction == 0 {
		return 0
	}
	n := int(math.Ceil(float64(total) * fraction))
	if n > total {
		n = total
	}
	return n
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// =============================================================================
// BORDER CHARACTERS
// =============================================================================

// BoxChars for the card separator and procedure overlay rules (ASCII-safe).
var BoxChars = struct {
	Horizontal       string
	Vertical         string
	HorizontalDouble string
}{
	Horizontal:       "-",
	Vertical:         "|",
	HorizontalDouble: "=",
}

// Rule returns a horizontal rule of width cells.
func Rule(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(BoxChars.Horizontal, width)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/motion"
	"github.com/jeranaias/rigdiag/internal/ui/styles"
	"github.com/jeranaias/rigdiag/internal/util"
)

// Footer labels.
const (
	ProcedureLabel = "View full procedure"
	CopyLabel      = "[copy]"
)

// minInnerWidth keeps cards drawable on very narrow terminals.
const minInnerWidth = 12

// =============================================================================
// HIT REGIONS
// =============================================================================

type regionKind int

const (
	regionHeader regionKind = iota
	regionProcedure
	regionCopy
)

// hitPriority orders region kinds for hit testing. Copy comes first so a
// press on it can never fall through to a toggle.
var hitPriority = []regionKind{regionCopy, regionProcedure, regionHeader}

// hitRegion is a clickable rectangle in list coordinates. Top and Left are
// inclusive, Bottom and Right exclusive.
type hitRegion struct {
	kind   regionKind
	id     string
	index  int
	top    int
	bottom int
	left   int
	right  int
}

func (r hitRegion) contains(x, y int) bool {
	return x >= r.left && x < r.right && y >= r.top && y < r.bottom
}

type listLayout struct {
	lines   []string
	regions []hitRegion
}

func (ll listLayout) hitTest(x, y int) (hitRegion, bool) {
	for _, kind := range hitPriority {
		for _, r := range ll.regions {
			if r.kind == kind && r.contains(x, y) {
				return r, true
			}
		}
	}
	return hitRegion{}, false
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the card list at the current clock time.
func (l *SolutionList) View() string {
	return strings.Join(l.layout().lines, "\n")
}

// Height returns the number of rows View currently produces.
func (l *SolutionList) Height() int {
	return len(l.layout().lines)
}

func (l *SolutionList) layout() listLayout {
	var out listLayout
	if len(l.solutions) == 0 {
		return out
	}

	now := l.now()
	m := l.theme.Metrics
	for i, sol := range l.solutions {
		if i > 0 {
			for g := 0; g < m.CardGap; g++ {
				out.lines = append(out.lines, "")
			}
		}
		top := len(out.lines)
		card := l.renderCard(sol, l.frameAt(sol.ID, now), l.focused && i == l.focus)
		for _, r := range card.regions {
			r.top += top
			r.bottom += top
			r.id = sol.ID
			r.index = i
			out.regions = append(out.regions, r)
		}
		out.lines = append(out.lines, card.lines...)
	}
	return out
}

func (l *SolutionList) frameAt(id string, now time.Time) motion.Frame {
	if tr, ok := l.transitions[id]; ok {
		return tr.Sample(now)
	}
	return motion.Frame{}
}

// innerWidth is the content width of a card: the list width minus the
// border and horizontal padding.
func (l *SolutionList) innerWidth(padX int) int {
	inner := l.width - 2 - 2*padX
	if inner < minInnerWidth {
		inner = minInnerWidth
	}
	return inner
}

// citation returns the source label. Only compact mode truncates it.
func (l *SolutionList) citation(src model.Source) string {
	if l.compact {
		return util.Truncate(src.Title, l.truncateLength) + src.Suffix()
	}
	return src.Citation()
}

// renderCard draws one card. Region rows are relative to the card's top
// border row.
func (l *SolutionList) renderCard(sol model.Solution, frame motion.Frame, focused bool) listLayout {
	t := l.theme
	m := t.Metrics
	open := frame.BodyVisible()

	// Open cards get the lighter frame and, in compact mode, more padding.
	style, padX := t.Card, m.CollapsedPaddingX
	if open {
		style, padX = t.CardExpanded, m.PaddingX
	}
	if focused {
		style = style.BorderForeground(styles.FocusRing)
	}
	inner := l.innerWidth(padX)
	contentLeft := 1 + padX

	content := l.renderHeader(sol, frame, inner)
	headerRows := len(content)

	regions := []hitRegion{{
		kind:   regionHeader,
		top:    0,
		bottom: 1 + headerRows,
		left:   0,
		right:  inner + 2*contentLeft,
	}}

	if open {
		body, footer := l.renderBody(sol, frame, inner)
		shown := styles.RevealRows(len(body), frame.Height)
		content = append(content, body[:shown]...)

		for _, f := range footer {
			if f.row >= shown {
				continue
			}
			row := 1 + headerRows + f.row
			regions = append(regions, hitRegion{
				kind:   f.kind,
				top:    row,
				bottom: row + 1,
				left:   contentLeft + f.col,
				right:  contentLeft + f.col + f.width,
			})
		}
	}

	rendered := style.Width(inner + 2*padX).Render(strings.Join(content, "\n"))
	return listLayout{lines: strings.Split(rendered, "\n"), regions: regions}
}

// renderHeader draws the always-visible rows: chevron, title and badge, then
// the citation.
func (l *SolutionList) renderHeader(sol model.Solution, frame motion.Frame, inner int) []string {
	t := l.theme

	chevron := t.Chevron.Render(styles.ChevronGlyph(frame.Chevron))
	label := sol.Confidence.Label()
	badge := styles.ConfidenceBadge(sol.Confidence).Render(label)
	badgeWidth := util.StringWidth(label) + 4

	var lines []string
	titleWidth := inner - 2 - badgeWidth - 1
	if titleWidth >= minInnerWidth {
		title := util.FitWidth(sol.Title, titleWidth)
		gap := inner - 2 - util.StringWidth(title) - badgeWidth
		lines = append(lines, chevron+" "+t.CardTitle.Render(title)+strings.Repeat(" ", gap)+badge)
	} else {
		title := util.FitWidth(sol.Title, inner-2)
		lines = append(lines, chevron+" "+t.CardTitle.Render(title), "  "+badge)
	}

	// Full mode never shortens the citation; it wraps instead.
	if l.compact {
		citation := util.FitWidth(l.citation(sol.Source), inner-2)
		return append(lines, "  "+t.Citation.Render(citation))
	}
	for _, row := range wrapText(l.citation(sol.Source), inner-2) {
		lines = append(lines, "  "+t.Citation.Render(row))
	}
	return lines
}

type footerRegion struct {
	kind  regionKind
	row   int
	col   int
	width int
}

// renderBody draws the separator, steps and footer. Opacity is drawn by
// fading toward the card background; every row is produced even when
// invisible so the height reveal stays stable.
func (l *SolutionList) renderBody(sol model.Solution, frame motion.Frame, inner int) ([]string, []footerRegion) {
	t := l.theme
	m := t.Metrics
	contentOp := frame.Content.Opacity

	var body []string
	separator := lipgloss.NewStyle().Foreground(t.Faded(styles.CardBorder, contentOp)).Render(styles.Rule(inner))
	blank := func() {
		for i := 0; i < m.PaddingY; i++ {
			body = append(body, "")
		}
	}

	body = append(body, separator)
	blank()

	indent := strings.Repeat(" ", m.StepIndent)
	hang := strings.Repeat(" ", styles.StepIconWidth+1)
	textWidth := inner - m.StepIndent - styles.StepIconWidth - 1
	for i, step := range sol.Steps {
		op := contentOp
		if i < len(frame.Steps) {
			op *= frame.Steps[i].Opacity
		}
		wrapped := wrapText(step.Text, textWidth)
		if styles.Invisible(op) {
			for range wrapped {
				body = append(body, "")
			}
			continue
		}

		icon := styles.StepIcon(step.Type)
		iconStyle := lipgloss.NewStyle().Foreground(t.FadedColor(styles.StepColor(step.Type), op)).Bold(true)
		textStyle := lipgloss.NewStyle().Foreground(t.Faded(styles.TextPrimary, op)).Bold(step.Bold)

		iconCell := iconStyle.Render(icon) + strings.Repeat(" ", styles.StepIconWidth-util.StringWidth(icon)+1)
		for j, line := range wrapped {
			if j == 0 {
				body = append(body, indent+iconCell+textStyle.Render(line))
			} else {
				body = append(body, indent+hang+textStyle.Render(line))
			}
		}
	}

	blank()
	body = append(body, separator)

	footOp := contentOp * frame.Footer
	linkStyle := t.FooterLink.Foreground(t.Faded(styles.LinkColor, footOp))
	copyStyle := t.CopyButton.Foreground(t.Faded(styles.TextSecondary, footOp))
	procWidth := util.StringWidth(ProcedureLabel)
	copyWidth := util.StringWidth(CopyLabel)
	copyCol := inner - copyWidth

	render := func(style lipgloss.Style, text string) string {
		if styles.Invisible(footOp) {
			return strings.Repeat(" ", util.StringWidth(text))
		}
		return style.Render(text)
	}

	var regions []footerRegion
	if !m.FooterStacked && inner >= procWidth+1+copyWidth {
		row := len(body)
		body = append(body, render(linkStyle, ProcedureLabel)+strings.Repeat(" ", copyCol-procWidth)+render(copyStyle, CopyLabel))
		regions = append(regions,
			footerRegion{kind: regionProcedure, row: row, col: 0, width: procWidth},
			footerRegion{kind: regionCopy, row: row, col: copyCol, width: copyWidth},
		)
	} else {
		procRow := len(body)
		body = append(body, render(linkStyle, util.FitWidth(ProcedureLabel, inner)))
		copyRow := len(body)
		if copyCol < 0 {
			copyCol = 0
		}
		body = append(body, strings.Repeat(" ", copyCol)+render(copyStyle, CopyLabel))
		regions = append(regions,
			footerRegion{kind: regionProcedure, row: procRow, col: 0, width: procWidth},
			footerRegion{kind: regionCopy, row: copyRow, col: copyCol, width: copyWidth},
		)
	}
	return body, regions
}

// wrapText word-wraps plain text to width cells.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/rigdiag/internal/model"
)

// =============================================================================
// PROCEDURE OVERLAY
// =============================================================================

// procedureView shows one solution as rendered markdown.
type procedureView struct {
	solution model.Solution
	viewport viewport.Model
}

// ProcedureMarkdown renders a solution as a markdown document.
func ProcedureMarkdown(sol model.Solution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sol.Title)
	fmt.Fprintf(&b, "*%s* - %s\n\n", sol.Confidence.Label(), sol.Source.Citation())

	for i, step := range sol.Steps {
		text := step.Text
		if step.Bold {
			text = "**" + text + "**"
		}
		switch step.Kind() {
		case model.StepWarning:
			text = "**Warning:** " + text
		case model.StepTip:
			text = "_Tip:_ " + text
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}

	if sol.ProcedureLink != "" {
		fmt.Fprintf(&b, "\nFull procedure: `%s`\n", sol.ProcedureLink)
	}
	return b.String()
}

// renderMarkdown renders markdown for the terminal, falling back to the raw
// source if glamour fails.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func newProcedureView(sol model.Solution, width, height int) *procedureView {
	vp := viewport.New(width, height)
	vp.SetContent(renderMarkdown(ProcedureMarkdown(sol), width))
	return &procedureView{solution: sol, viewport: vp}
}

func (p *procedureView) resize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.SetContent(renderMarkdown(ProcedureMarkdown(p.solution), width))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigdiag/internal/logging"
	"github.com/jeranaias/rigdiag/internal/ui/components"
)

// renderOptions holds the render command flags.
type renderOptions struct {
	width  int
	expand []string
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the solution cards once, without animation",
		Long: `Print one settled frame of the solution card list to stdout.

By default the first card is expanded. Use --expand to choose the expanded
cards by id, or "all" / "none".`,
		Example: `  rigdiag render
  rigdiag render --solutions fuel.yaml --expand all
  rigdiag render --width 60 --expand sol-2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts, ro)
		},
	}
	cmd.Flags().IntVar(&ro.width, "width", 0, "output width in columns (default: terminal width)")
	cmd.Flags().StringSliceVar(&ro.expand, "expand", nil, "solution ids to expand, or all / none")
	return cmd
}

func runRender(cmd *cobra.Command, opts *options, ro *renderOptions) error {
	if ro.width < 0 {
		return &UsageError{Field: "--width", Value: fmt.Sprint(ro.width), Reason: "must not be negative"}
	}

	rt, err := setup(opts, logging.Stderr)
	if err != nil {
		return err
	}
	defer rt.close()

	c, err := loadContent(rt.cfg)
	if err != nil {
		return err
	}

	width := ro.width
	if width == 0 {
		width, _ = GetTerminalSize()
	}

	list := components.NewSolutionList(c.solutions, components.SolutionListOptions{
		Theme:          newTheme(rt.cfg),
		Logger:         logging.For(rt.logger, "cards"),
		TruncateLength: rt.cfg.UI.TruncateLength,
		ReducedMotion:  true,
		Compact:        compactFor(rt.cfg, width),
		Width:          width,
	})
	defer list.Close()

	if ro.expand != nil {
		if err := applyExpand(list, c, ro.expand); err != nil {
			return err
		}
	}

	out := list.View()
	if out == "" {
		out = "No solutions."
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// applyExpand toggles cards until exactly the requested set is expanded.
func applyExpand(list *components.SolutionList, c *content, expand []string) error {
	want := make(map[string]bool)
	for _, raw := range expand {
		id := strings.TrimSpace(raw)
		switch strings.ToLower(id) {
		case "":
			continue
		case "all":
			for _, sol := range c.solutions {
				want[sol.ID] = true
			}
			continue
		case "none":
			continue
		}
		if _, err := c.findSolution(id); err != nil {
			return err
		}
		want[id] = true
	}

	for _, sol := range c.solutions {
		if list.IsExpanded(sol.ID) != want[sol.ID] {
			list.Toggle(sol.ID)
		}
	}
	return nil
}

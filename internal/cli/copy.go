// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigdiag/internal/logging"
	"github.com/jeranaias/rigdiag/internal/ui/components"
)

// clipboardFor is replaced in tests.
var clipboardFor = systemClipboard

func systemClipboard() (components.Clipboard, error) {
	if components.ClipboardUnsupported() {
		return nil, &CommandError{Command: "copy", Reason: "no clipboard utility available (try --print)"}
	}
	return components.SystemClipboard{}, nil
}

func newCopyCmd(opts *options) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "copy <solution-id>",
		Short: "Copy one solution as plain text to the clipboard",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeSolutionIDs(opts), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, logging.Stderr)
			if err != nil {
				return err
			}
			defer rt.close()

			c, err := loadContent(rt.cfg)
			if err != nil {
				return err
			}
			sol, err := c.findSolution(args[0])
			if err != nil {
				return err
			}

			text := sol.CopyText()
			if printOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}
			cb, err := clipboardFor()
			if err != nil {
				return err
			}
			if err := cb.WriteAll(text); err != nil {
				rt.logger.Warn("clipboard write failed", "solution", sol.ID, "err", err)
				return &CommandError{Command: "copy", Reason: "clipboard write failed", Err: err}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Copied to clipboard: ")+sol.Title)
			return err
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the text instead of copying it")
	return cmd
}

// completeSolutionIDs lists the ids of the configured solutions. Errors
// yield no suggestions.
func completeSolutionIDs(opts *options) []string {
	cfg, _ := loadConfig(opts.configPath)
	if cfg == nil {
		return nil
	}
	if opts.solutionsPath != "" {
		cfg.Content.SolutionsFile = opts.solutionsPath
	}
	c, err := loadContent(cfg)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(c.solutions))
	for _, sol := range c.solutions {
		ids = append(ids, sol.ID+"\t"+sol.Title)
	}
	return ids
}

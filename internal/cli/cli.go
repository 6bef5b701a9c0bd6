// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the rigdiag command-line interface.
//
// The root command runs the interactive TUI. Subcommands print a static
// frame of the card list, copy one card to the clipboard, inspect the
// configuration and report the version.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// options holds the global flags.
type options struct {
	configPath    string
	solutionsPath string
	question      string
	compact       string
	reducedMotion string
	logFile       string
	logLevel      string
}

// Execute runs the root command against os.Args and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		printErrorTo(stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rigdiag",
		Short: "Ranked maintenance solutions in your terminal",
		Long: `rigdiag shows a diagnostic answer as a list of ranked solution cards.

Each card expands to its step-by-step procedure. Cards animate open and
closed unless reduced motion is requested, and the layout compacts on
narrow terminals.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true, // Execute prints errors itself
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: ~/.rigdiag/config.toml)")
	flags.StringVar(&opts.solutionsPath, "solutions", "", "solution list file (.yaml, .yml or .json)")
	flags.StringVar(&opts.question, "question", "", "question shown above the solutions")
	flags.StringVar(&opts.compact, "compact", "", "compact layout: auto, on, off")
	flags.StringVar(&opts.reducedMotion, "reduced-motion", "", "reduced motion: auto, on, off")
	flags.StringVar(&opts.logFile, "log-file", "", "log file, - for stderr (default: ~/.rigdiag/rigdiag.log)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	registerFlagCompletions(root)

	root.AddCommand(
		newRenderCmd(opts),
		newCopyCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions(root *cobra.Command) {
	modes := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"auto\tFollow the terminal or system setting",
			"on\tAlways on",
			"off\tAlways off",
		}, cobra.ShellCompDirectiveNoFileComp
	}
	_ = root.RegisterFlagCompletionFunc("compact", modes)
	_ = root.RegisterFlagCompletionFunc("reduced-motion", modes)

	_ = root.RegisterFlagCompletionFunc("solutions", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
	})
	_ = root.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
	})
	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigdiag/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
	}

	keys := func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.GetAllKeys(), cobra.ShellCompDirectiveNoFileComp
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := effectiveConfig(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("rigdiag configuration"))
			for _, key := range config.GetAllKeys() {
				v, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, keyValue(key, v))
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:               "get <key>",
		Short:             "Print one setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig(opts)
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return &UsageError{Field: "key", Value: args[0], Reason: err.Error(), Example: "rigdiag config get ui.truncate_length"}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), toString(v))
			return err
		},
	}

	set := &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Change one setting and save it",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, opts, args[0], args[1])
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := configPath(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
			return err
		},
	}

	cmd.AddCommand(show, get, set, path)
	return cmd
}

// effectiveConfig is the configuration after files, env and flags.
func effectiveConfig(opts *options) (*config.Config, error) {
	cfg, err := loadConfig(opts.configPath)
	if cfg == nil {
		return nil, &configError{err: err}
	}
	if err := applyFlags(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath is the file config set writes to.
func configPath(opts *options) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.ConfigPathTOML()
}

// runConfigSet edits the stored file only. Env overrides and flags are not
// written back.
func runConfigSet(cmd *cobra.Command, opts *options, key, value string) error {
	path, err := configPath(opts)
	if err != nil {
		return &configError{err: err}
	}

	cfg := config.Default()
	if err := loadFile(cfg, path); err != nil {
		return &configError{err: err}
	}
	cfg.SetDefaults()

	if err := cfg.Set(key, value); err != nil {
		return &UsageError{Field: "key", Value: key, Reason: err.Error()}
	}
	cfg.Migrate()
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch {
	case opts.configPath == "":
		err = config.Save(cfg)
	case strings.HasSuffix(path, ".json"):
		err = config.SaveJSON(cfg, path)
	default:
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return &configError{err: err}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Saved ")+key+" = "+value)
	return err
}

// loadFile decodes an existing file into cfg without env overrides. A
// missing file leaves the defaults in place.
func loadFile(cfg *config.Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if strings.HasSuffix(path, ".json") {
		return config.LoadJSON(cfg, path)
	}
	return config.LoadTOML(cfg, path)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		if s == "" {
			return `""`
		}
		return s
	}
	return fmt.Sprint(v)
}

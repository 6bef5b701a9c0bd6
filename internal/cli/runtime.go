// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigdiag/internal/config"
	"github.com/jeranaias/rigdiag/internal/logging"
	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/motion"
	"github.com/jeranaias/rigdiag/internal/ui/chat"
	"github.com/jeranaias/rigdiag/internal/ui/styles"
)

// =============================================================================
// RUNTIME
// =============================================================================

// runtime is the state shared by every command: resolved configuration and
// the logger.
type runtime struct {
	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
}

// setup loads configuration, applies flag overrides and opens the logger.
// logPath overrides the destination when the configuration leaves it empty.
func setup(opts *options, logPath string) (*runtime, error) {
	cfg, loadErr := loadConfig(opts.configPath)
	if cfg == nil {
		return nil, &configError{err: loadErr}
	}
	if err := applyFlags(cfg, opts); err != nil {
		return nil, err
	}
	if cfg.Log.Path == "" && logPath != "" {
		cfg.Log.Path = logPath
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, &configError{err: err}
	}
	if loadErr != nil {
		logger.Warn("config load failed, using defaults", "err", loadErr)
	}
	return &runtime{cfg: cfg, logger: logger, closeLog: closer}, nil
}

// close flushes and closes the log destination.
func (rt *runtime) close() {
	if rt != nil && rt.closeLog != nil {
		_ = rt.closeLog()
	}
}

// loadConfig reads an explicit file or the default locations. A broken
// default file yields defaults plus the load error.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load()
}

// applyFlags layers command-line values over the loaded configuration and
// validates the result.
func applyFlags(cfg *config.Config, opts *options) error {
	if opts.solutionsPath != "" {
		cfg.Content.SolutionsFile = opts.solutionsPath
	}
	if opts.question != "" {
		cfg.Content.Question = opts.question
	}
	if opts.compact != "" {
		if _, err := chat.ParseCompactMode(opts.compact); err != nil {
			return &UsageError{Field: "--compact", Value: opts.compact, Reason: "must be auto, on, or off"}
		}
		cfg.UI.Compact = opts.compact
	}
	if opts.reducedMotion != "" {
		if _, err := motion.ParseMode(opts.reducedMotion); err != nil {
			return &UsageError{Field: "--reduced-motion", Value: opts.reducedMotion, Reason: "must be auto, on, or off"}
		}
		cfg.Motion.ReducedMotion = opts.reducedMotion
	}
	if opts.logFile != "" {
		cfg.Log.Path = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	cfg.Migrate()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// =============================================================================
// CONTENT
// =============================================================================

// content is the question and validated solutions to display.
type content struct {
	question  string
	solutions []model.Solution
}

// loadContent reads the configured solutions file, or the built-in sample
// when none is set. An explicit question wins over the file's own.
func loadContent(cfg *config.Config) (*content, error) {
	c := &content{question: model.SampleQuestion, solutions: model.SampleSolutions()}

	if path := cfg.Content.SolutionsFile; path != "" {
		set, err := model.LoadSolutions(path)
		if err != nil {
			return nil, err
		}
		c.solutions = set.Solutions
		if set.Question != "" {
			c.question = set.Question
		}
	}
	if cfg.Content.Question != "" {
		c.question = cfg.Content.Question
	}
	return c, nil
}

// findSolution looks a solution up by id.
func (c *content) findSolution(id string) (model.Solution, error) {
	sol, ok := model.Find(c.solutions, id)
	if !ok {
		return model.Solution{}, &NotFoundError{Resource: "solution", ID: id}
	}
	return sol, nil
}

// =============================================================================
// PRESENTATION
// =============================================================================

// newDetector builds the reduced-motion detector from configuration and
// installs it as the process default. A preference file that cannot be
// watched is logged and read only once. The desktop setting is followed for
// the whole session when enabled.
func newDetector(cfg *config.Config, logger *log.Logger) (*motion.Detector, error) {
	mode, err := motion.ParseMode(cfg.Motion.ReducedMotion)
	if err != nil {
		return nil, err
	}
	d := motion.NewDetector(logging.For(logger, "motion"), motion.DefaultSources(motion.Options{
		Mode:           mode,
		PreferenceFile: cfg.Motion.PreferenceFile,
		UseDesktop:     cfg.Motion.UseDesktopSetting,
	})...)

	if path := cfg.Motion.PreferenceFile; path != "" {
		if err := d.Watch(path); err != nil {
			logger.Warn("cannot watch motion preference file", "path", path, "err", err)
		}
	}
	if cfg.Motion.UseDesktopSetting {
		if err := d.WatchDesktop(motion.DesktopSource{}, motion.DefaultPollInterval); err != nil {
			logger.Warn("cannot watch desktop motion setting", "err", err)
		}
	}
	motion.SetDefault(d)
	return d, nil
}

// newTheme builds the theme for the configured background.
func newTheme(cfg *config.Config) *styles.Theme {
	return styles.NewThemeFor(GetColorProfile(), darkBackground(cfg.UI.Theme))
}

// compactFor resolves the compact layout for a fixed width.
func compactFor(cfg *config.Config, cols int) bool {
	mode, err := chat.ParseCompactMode(cfg.UI.Compact)
	if err != nil {
		return false
	}
	switch mode {
	case chat.CompactOn:
		return true
	case chat.CompactOff:
		return false
	}
	return chat.IsCompact(cols, cfg.UI.CellWidth, cfg.UI.CompactBreakpoint)
}

// errNoTerminal is returned when the TUI is started without a terminal.
var errNoTerminal = errors.New("rigdiag needs an interactive terminal; use 'rigdiag render' for piped output")

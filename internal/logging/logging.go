// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the structured logger shared by every rigdiag
// component.
//
// The TUI owns the terminal while it runs, so log output goes to a file
// (~/.rigdiag/rigdiag.log unless configured). A path of "-" sends output to
// stderr, which is only sensible for the non-interactive commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/rigdiag/internal/config"
)

// Stderr is the path value that selects standard error.
const Stderr = "-"

// New returns a logger configured from cfg and a func that closes the
// underlying file. The closer is always non-nil.
func New(cfg config.LogConfig) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	w, closer, err := openOutput(cfg.Path)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "rigdiag",
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything. Tests and the render
// command use it.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// For returns a child logger tagged with a component prefix.
func For(logger *log.Logger, component string) *log.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return logger.WithPrefix(component)
}

// ResolvePath returns the file New writes to for path. Stderr is returned
// unchanged.
func ResolvePath(path string) (string, error) {
	if path == Stderr {
		return Stderr, nil
	}
	if path == "" {
		return config.DefaultLogPath()
	}
	return path, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, nil, err
	}
	if resolved == Stderr {
		return os.Stderr, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(resolved, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}

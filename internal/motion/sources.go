// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// PREFERENCE SOURCES
// =============================================================================

// Source answers the reduced-motion question from one place. A source that
// has no opinion returns ok=false; errors are reported but never fatal.
type Source interface {
	Name() string
	Query(ctx context.Context) (reduced bool, ok bool, err error)
}

// Mode is a tri-state setting: follow the environment, or force on or off.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

// ParseMode parses a mode value. The empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeOn, "true", "1", "yes":
		return ModeOn, nil
	case ModeOff, "false", "0", "no":
		return ModeOff, nil
	default:
		return ModeAuto, fmt.Errorf("invalid mode %q: must be auto, on, or off", s)
	}
}

// ForcedSource answers from an explicit user setting.
type ForcedSource struct {
	Mode Mode
}

func (s ForcedSource) Name() string { return "forced" }

func (s ForcedSource) Query(context.Context) (bool, bool, error) {
	switch s.Mode {
	case ModeOn:
		return true, true, nil
	case ModeOff:
		return false, true, nil
	default:
		return false, false, nil
	}
}

// EnvSource answers from the first set environment variable in Keys.
type EnvSource struct {
	Keys   []string
	Lookup func(string) (string, bool)
}

// DefaultEnvKeys are the variables consulted by the default detector.
var DefaultEnvKeys = []string{"RIGDIAG_REDUCED_MOTION", "REDUCE_MOTION"}

func (s EnvSource) Name() string { return "env" }

func (s EnvSource) Query(context.Context) (bool, bool, error) {
	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range s.Keys {
		v, set := lookup(key)
		if !set || strings.TrimSpace(v) == "" {
			continue
		}
		reduced, ok := parsePreference(v)
		if !ok {
			return false, false, fmt.Errorf("%s: unrecognized value %q", key, v)
		}
		return reduced, true, nil
	}
	return false, false, nil
}

// FileSource answers from a one-word preference file. A missing file has no
// opinion.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Query(context.Context) (bool, bool, error) {
	if s.Path == "" {
		return false, false, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("read preference file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return false, false, nil
	}
	reduced, ok := parsePreference(text)
	if !ok {
		return false, false, fmt.Errorf("preference file %s: unrecognized value %q", s.Path, text)
	}
	return reduced, true, nil
}

// DesktopSource asks the GNOME desktop whether animations are enabled.
type DesktopSource struct {
	// Run executes a command and returns its stdout. Defaults to os/exec.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
	// Monitor opens a stream that yields one line per change of the setting.
	// Defaults to `gsettings monitor`.
	Monitor func(ctx context.Context) (io.ReadCloser, error)
}

const (
	desktopSchema = "org.gnome.desktop.interface"
	desktopKey    = "enable-animations"
)

const desktopQueryTimeout = 2 * time.Second

func (s DesktopSource) Name() string { return "desktop" }

func (s DesktopSource) Query(ctx context.Context) (bool, bool, error) {
	run := s.Run
	if run == nil {
		if _, err := exec.LookPath("gsettings"); err != nil {
			return false, false, nil
		}
		run = runCommand
	}

	ctx, cancel := context.WithTimeout(ctx, desktopQueryTimeout)
	defer cancel()

	out, err := run(ctx, "gsettings", "get", desktopSchema, desktopKey)
	if err != nil {
		return false, false, fmt.Errorf("gsettings: %w", err)
	}
	switch strings.TrimSpace(string(out)) {
	case "true":
		return false, true, nil
	case "false":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("gsettings: unexpected output %q", strings.TrimSpace(string(out)))
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (s DesktopSource) monitor(ctx context.Context) (io.ReadCloser, error) {
	if s.Monitor != nil {
		return s.Monitor(ctx)
	}
	if _, err := exec.LookPath("gsettings"); err != nil {
		return nil, err
	}
	return startMonitor(ctx)
}

// startMonitor runs `gsettings monitor` for the animation key. Closing the
// stream stops the process.
func startMonitor(ctx context.Context) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, "gsettings", "monitor", desktopSchema, desktopKey)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("gsettings monitor: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("gsettings monitor: %w", err)
	}
	return &commandStream{ReadCloser: out, cmd: cmd}, nil
}

type commandStream struct {
	io.ReadCloser
	cmd  *exec.Cmd
	once sync.Once
}

func (c *commandStream) Close() error {
	c.once.Do(func() {
		_ = c.ReadCloser.Close()
		if c.cmd.Process != nil {
			_ = c.cmd.Process.Kill()
		}
		_ = c.cmd.Wait()
	})
	return nil
}

// parsePreference maps a preference word to a reduced-motion value.
func parsePreference(s string) (reduced bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reduce", "reduced", "true", "1", "yes", "on":
		return true, true
	case "no-preference", "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Options selects the sources of a detector.
type Options struct {
	Mode           Mode
	PreferenceFile string
	UseDesktop     bool
}

// DefaultSources returns the source chain in precedence order.
func DefaultSources(opts Options) []Source {
	sources := []Source{
		ForcedSource{Mode: opts.Mode},
		EnvSource{Keys: DefaultEnvKeys},
	}
	if opts.PreferenceFile != "" {
		sources = append(sources, FileSource{Path: opts.PreferenceFile})
	}
	if opts.UseDesktop {
		sources = append(sources, DesktopSource{})
	}
	return sources
}

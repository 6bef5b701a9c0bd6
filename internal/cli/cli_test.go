// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigdiag/internal/config"
	"github.com/jeranaias/rigdiag/internal/logging"
	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/motion"
	"github.com/jeranaias/rigdiag/internal/ui/components"
)

// isolate gives each test its own home directory and a clean environment.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"RIGDIAG_COMPACT", "RIGDIAG_REDUCED_MOTION", "RIGDIAG_LOG_LEVEL", "RIGDIAG_LOG_FILE",
		"REDUCE_MOTION",
	} {
		t.Setenv(k, "")
	}
	return home
}

// execute runs the CLI with a dark theme so no terminal query is made.
func execute(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.Motion.UseDesktopSetting = false
	require.NoError(t, config.SaveTOML(cfg, cfgPath))

	var out, errOut bytes.Buffer
	code = run(append([]string{"--config", cfgPath}, args...), &out, &errOut)
	return out.String(), errOut.String(), code
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func useClipboard(t *testing.T, cb components.Clipboard) {
	t.Helper()
	prev := clipboardFor
	clipboardFor = func() (components.Clipboard, error) { return cb, nil }
	t.Cleanup(func() { clipboardFor = prev })
}

func writeSolutions(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// =============================================================================
// ROOT AND VERSION
// =============================================================================

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"render", "copy", "config", "version"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "solutions", "question", "compact", "reduced-motion", "log-file", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, code := execute(t, "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "rigdiag "+Version)
	assert.Contains(t, out, "commit:")
}

func TestRoot_RequiresTerminal(t *testing.T) {
	isolate(t)
	_, errOut, code := execute(t)
	assert.Equal(t, ExitGeneralError, code)
	assert.Contains(t, errOut, "interactive terminal")
}

func TestInvalidFlagValues(t *testing.T) {
	isolate(t)

	_, errOut, code := execute(t, "render", "--compact", "sometimes")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, errOut, "--compact")

	_, _, code = execute(t, "render", "--reduced-motion", "maybe")
	assert.Equal(t, ExitUsageError, code)

	_, _, code = execute(t, "render", "--log-level", "loud")
	assert.Equal(t, ExitConfigError, code)
}

// =============================================================================
// RENDER
// =============================================================================

func TestRender_DefaultFirstExpanded(t *testing.T) {
	isolate(t)
	out, _, code := execute(t, "render", "--width", "100")
	require.Equal(t, ExitSuccess, code)

	assert.Contains(t, out, "Primary Fuel System Diagnostic")
	assert.Contains(t, out, "Fuel Pressure Sensor Calibration Check")
	assert.Contains(t, out, "Shutdown engine")
	assert.NotContains(t, out, "Connect diagnostic scanner")
	assert.Contains(t, out, "MTU 2000 Series Manual p.247, Rev 2024.3")
}

func TestRender_ExpandSelection(t *testing.T) {
	isolate(t)

	out, _, code := execute(t, "render", "--width", "100", "--expand", "all")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Shutdown engine")
	assert.Contains(t, out, "Connect diagnostic scanner")
	assert.Contains(t, out, "Install pressure gauge")

	out, _, code = execute(t, "render", "--width", "100", "--expand", "solution-2")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, out, "Shutdown engine")
	assert.Contains(t, out, "Connect diagnostic scanner")

	out, _, code = execute(t, "render", "--width", "100", "--expand", "none")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, out, "Shutdown engine")
	assert.NotContains(t, out, components.ProcedureLabel)
}

func TestRender_UnknownExpandID(t *testing.T) {
	isolate(t)
	_, errOut, code := execute(t, "render", "--expand", "solution-9")
	assert.Equal(t, ExitNotFoundError, code)
	assert.Contains(t, errOut, "solution not found: solution-9")
}

func TestRender_CompactTruncatesCitations(t *testing.T) {
	isolate(t)

	out, _, code := execute(t, "render", "--width", "60")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "MTU 2000 Series M... p.247")

	out, _, code = execute(t, "render", "--width", "120", "--compact", "on")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "MTU 2000 Series M... p.247")

	out, _, code = execute(t, "render", "--width", "60", "--compact", "off")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, out, "MTU 2000 Series M...")
}

func TestRender_SolutionsFile(t *testing.T) {
	isolate(t)
	path := writeSolutions(t, "list.yaml", `
question: Generator trips on load
solutions:
  - id: gen-1
    title: Check breaker trip setting
    confidence: high
    source:
      title: Genset Service Guide
      page: 12
    steps:
      - text: Open the breaker panel cover.
      - text: Verify the trip setting matches the nameplate.
        type: tip
`)
	out, _, code := execute(t, "render", "--width", "100", "--solutions", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Check breaker trip setting")
	assert.Contains(t, out, "Genset Service Guide p.12")
	assert.Contains(t, out, "Open the breaker panel cover.")
}

func TestRender_MalformedSolutionsFails(t *testing.T) {
	isolate(t)
	path := writeSolutions(t, "bad.json", `[{"id": "x", "title": "", "confidence": "certain", "source": {"title": "M"}, "steps": []}]`)

	_, errOut, code := execute(t, "render", "--solutions", path)
	assert.Equal(t, ExitDataError, code)
	assert.Contains(t, errOut, "invalid solutions")
}

func TestRender_EmptyList(t *testing.T) {
	isolate(t)
	path := writeSolutions(t, "empty.json", `[]`)

	out, _, code := execute(t, "render", "--solutions", path)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "No solutions.\n", out)
}

// =============================================================================
// COPY
// =============================================================================

func TestCopy_WritesPlainText(t *testing.T) {
	isolate(t)
	cb := &fakeClipboard{}
	useClipboard(t, cb)

	out, _, code := execute(t, "copy", "solution-2")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Copied to clipboard")

	sol, ok := model.Find(model.SampleSolutions(), "solution-2")
	require.True(t, ok)
	assert.Equal(t, sol.CopyText(), cb.text)
	assert.True(t, strings.HasPrefix(cb.text, "Fuel Pressure Sensor Calibration Check\n\n• Connect"))
}

func TestCopy_Print(t *testing.T) {
	isolate(t)
	cb := &fakeClipboard{}
	useClipboard(t, cb)

	out, _, code := execute(t, "copy", "--print", "solution-1")
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, cb.text)
	assert.Contains(t, out, "• Shutdown engine")
}

func TestCopy_Failures(t *testing.T) {
	isolate(t)

	useClipboard(t, &fakeClipboard{err: errors.New("no display")})
	_, errOut, code := execute(t, "copy", "solution-1")
	assert.Equal(t, ExitGeneralError, code)
	assert.Contains(t, errOut, "clipboard write failed")

	_, errOut, code = execute(t, "copy", "missing")
	assert.Equal(t, ExitNotFoundError, code)
	assert.Contains(t, errOut, "solution not found: missing")

	_, _, code = execute(t, "copy")
	assert.Equal(t, ExitGeneralError, code)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_GetSetRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "rigdiag.toml")

	var out, errOut bytes.Buffer
	code := run([]string{"--config", path, "config", "set", "ui.truncate_length", "16"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code, errOut.String())

	out.Reset()
	code = run([]string{"--config", path, "config", "get", "ui.truncate_length"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code, errOut.String())
	assert.Equal(t, "16\n", out.String())

	out.Reset()
	code = run([]string{"--config", path, "config", "path"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, path+"\n", out.String())
}

func TestConfig_SetWritesDefaultFile(t *testing.T) {
	home := isolate(t)

	var out, errOut bytes.Buffer
	code := run([]string{"config", "set", "ui.truncate_length", "16"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code, errOut.String())

	data, err := os.ReadFile(filepath.Join(home, ".rigdiag", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "truncate_length = 16")

	out.Reset()
	code = run([]string{"config", "get", "ui.truncate_length"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code, errOut.String())
	assert.Equal(t, "16\n", out.String())
}

func TestConfig_SetRejectsInvalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "rigdiag.toml")

	var out, errOut bytes.Buffer
	code := run([]string{"--config", path, "config", "set", "ui.truncate_length", "2"}, &out, &errOut)
	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, errOut.String(), "ui.truncate_length")

	code = run([]string{"--config", path, "config", "set", "ui.nope", "2"}, &out, &errOut)
	assert.Equal(t, ExitUsageError, code)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected values must not be saved")
}

func TestConfig_ShowReflectsFlags(t *testing.T) {
	isolate(t)
	out, _, code := execute(t, "--compact", "on", "config", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "ui.compact")
	assert.Regexp(t, `ui\.compact\s+on`, out)
}

// =============================================================================
// HELPERS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Field: "--width"}, ExitUsageError},
		{"not found", &NotFoundError{Resource: "solution", ID: "x"}, ExitNotFoundError},
		{"config", &configError{err: errors.New("bad file")}, ExitConfigError},
		{"config validation", config.ValidateErrors{{Field: "ui.theme"}}, ExitConfigError},
		{"data", model.ValidateErrors{{Field: "solutions[0].id"}}, ExitDataError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestCompactFor(t *testing.T) {
	cfg := config.Default()
	assert.True(t, compactFor(cfg, 95))
	assert.False(t, compactFor(cfg, 96))

	cfg.UI.Compact = "on"
	assert.True(t, compactFor(cfg, 200))
	cfg.UI.Compact = "off"
	assert.False(t, compactFor(cfg, 10))
}

func TestLoadContent_QuestionPrecedence(t *testing.T) {
	path := writeSolutions(t, "q.yaml", "question: From file\nsolutions: []\n")

	cfg := config.Default()
	c, err := loadContent(cfg)
	require.NoError(t, err)
	assert.Equal(t, model.SampleQuestion, c.question)
	assert.Len(t, c.solutions, 3)

	cfg.Content.SolutionsFile = path
	c, err = loadContent(cfg)
	require.NoError(t, err)
	assert.Equal(t, "From file", c.question)
	assert.Empty(t, c.solutions)

	cfg.Content.Question = "From flag"
	c, err = loadContent(cfg)
	require.NoError(t, err)
	assert.Equal(t, "From flag", c.question)
}

func TestNewDetector_FollowsDesktopSetting(t *testing.T) {
	isolate(t)
	defer motion.SetDefault(nil)

	cfg := config.Default()
	cfg.Motion.ReducedMotion = "off"
	d, err := newDetector(cfg, logging.Discard())
	require.NoError(t, err)
	defer d.Close()
	assert.False(t, d.Current())
	assert.Same(t, d, motion.Default())
	assert.Error(t, d.WatchDesktop(motion.DesktopSource{}, time.Second), "desktop watch should already be running")

	cfg.Motion.UseDesktopSetting = false
	quiet, err := newDetector(cfg, logging.Discard())
	require.NoError(t, err)
	defer quiet.Close()
	assert.NoError(t, quiet.WatchDesktop(motion.DesktopSource{Monitor: func(context.Context) (io.ReadCloser, error) {
		return nil, errors.New("no monitor")
	}}, time.Hour))
}

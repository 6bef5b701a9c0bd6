// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/motion"
	"github.com/jeranaias/rigdiag/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeClipboard struct {
	text  string
	calls int
	err   error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type listFixture struct {
	list  *SolutionList
	clock *fakeClock
	clip  *fakeClipboard
}

func newFixture(t *testing.T, solutions []model.Solution, mutate ...func(*SolutionListOptions)) *listFixture {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	clip := &fakeClipboard{}
	opts := SolutionListOptions{
		Theme:     styles.NewThemeFor(termenv.Ascii, false),
		Logger:    log.New(io.Discard),
		Clipboard: clip,
		Clock:     clock.Now,
		Width:     160,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	l := NewSolutionList(solutions, opts)
	t.Cleanup(l.Close)
	return &listFixture{list: l, clock: clock, clip: clip}
}

func regionOf(t *testing.T, l *SolutionList, kind regionKind, id string) hitRegion {
	t.Helper()
	for _, r := range l.layout().regions {
		if r.kind == kind && r.id == id {
			return r
		}
	}
	t.Fatalf("no region of kind %d for %s", kind, id)
	return hitRegion{}
}

func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// =============================================================================
// EXPANSION TESTS
// =============================================================================

func TestSolutionListFirstCardExpanded(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	assert.Equal(t, []string{"solution-1"}, l.Expanded())
	assert.Equal(t, motion.PhaseExpanded, l.Phase("solution-1"))
	assert.Equal(t, motion.PhaseCollapsed, l.Phase("solution-2"))

	view := l.View()
	assert.Contains(t, view, "Primary Fuel System Diagnostic - Filter Inspection")
	assert.Contains(t, view, "Fuel Pressure Sensor Calibration Check")
	assert.Contains(t, view, "Fuel Line Pressure Test - Alternative Diagnosis")
	assert.Contains(t, view, "High Confidence")
	assert.Contains(t, view, "Medium Confidence")
	assert.Contains(t, view, "Low Confidence")
	assert.Contains(t, view, "MTU 2000 Series Manual p.247, Rev 2024.3")

	// Only the first card shows its body.
	assert.Contains(t, view, "Part #MT-4472")
	assert.NotContains(t, view, "J1939 interface")
	assert.Equal(t, 1, strings.Count(view, ProcedureLabel))
	assert.Equal(t, 1, strings.Count(view, CopyLabel))
}

func TestSolutionListEmpty(t *testing.T) {
	f := newFixture(t, nil)
	assert.Empty(t, f.list.Expanded())
	assert.Equal(t, "", f.list.View())
	assert.Nil(t, f.list.Click(0, 0))
}

func TestSolutionListIndependentToggles(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.ReducedMotion = true })
	l := f.list

	l.Toggle("solution-2")
	assert.Equal(t, []string{"solution-1", "solution-2"}, l.Expanded())

	l.Toggle("solution-1")
	assert.Equal(t, []string{"solution-2"}, l.Expanded())

	l.Toggle("solution-3")
	l.Toggle("solution-1")
	assert.Equal(t, []string{"solution-1", "solution-2", "solution-3"}, l.Expanded())

	view := l.View()
	assert.Contains(t, view, "J1939 interface")
	assert.Contains(t, view, "adapter kit")
}

func TestSolutionListToggleUnknownID(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	assert.Nil(t, f.list.Toggle("solution-9"))
	assert.Equal(t, []string{"solution-1"}, f.list.Expanded())
}

func TestSolutionListKeyboard(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.ReducedMotion = true })
	l := f.list

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Focus())

	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, l.IsExpanded("solution-2"))

	l.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, l.IsExpanded("solution-2"))

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, l.Focus(), "focus wraps around")

	l.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, l.Focus())
}

func TestSolutionListHeaderClickToggles(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.ReducedMotion = true })
	l := f.list

	header := regionOf(t, l, regionHeader, "solution-2")
	l.Update(tea.MouseMsg{X: header.left + 3, Y: header.top + 1, Type: tea.MouseLeft})
	assert.True(t, l.IsExpanded("solution-2"))
	assert.Equal(t, 1, l.Focus())

	// Wheel events never toggle.
	header = regionOf(t, l, regionHeader, "solution-2")
	l.Update(tea.MouseMsg{X: header.left + 3, Y: header.top + 1, Type: tea.MouseWheelDown})
	assert.True(t, l.IsExpanded("solution-2"))
}

// =============================================================================
// COPY TESTS
// =============================================================================

func TestSolutionListCopy(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	msg := run(l.Copy("solution-2"))
	require.IsType(t, CopyResultMsg{}, msg)
	assert.NoError(t, msg.(CopyResultMsg).Err)

	want := "Fuel Pressure Sensor Calibration Check\n\n" +
		"• Connect diagnostic scanner to ECM port (J1939 interface).\n" +
		"• Navigate to sensor diagnostics menu and select fuel pressure sensor.\n" +
		"• Compare live sensor readings with expected values at idle (2.8-3.2 bar).\n" +
		"• If readings are outside tolerance, perform sensor recalibration procedure."
	assert.Equal(t, want, f.clip.text)

	expire := l.Update(msg)
	assert.NotNil(t, expire)
	notice, isErr := l.Notice()
	assert.Equal(t, "Copied to clipboard", notice)
	assert.False(t, isErr)

	// Copy never changes expansion.
	assert.Equal(t, []string{"solution-1"}, l.Expanded())

	l.Update(noticeExpiredMsg{ListID: l.ID(), Seq: l.noticeSeq})
	notice, _ = l.Notice()
	assert.Empty(t, notice)
}

func TestSolutionListCopyClickDoesNotToggle(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	copyRegion := regionOf(t, l, regionCopy, "solution-1")
	msg := run(l.Click(copyRegion.left, copyRegion.top))

	require.IsType(t, CopyResultMsg{}, msg)
	assert.Equal(t, "solution-1", msg.(CopyResultMsg).SolutionID)
	assert.Equal(t, 1, f.clip.calls)
	assert.True(t, l.IsExpanded("solution-1"))
	assert.Equal(t, motion.PhaseExpanded, l.Phase("solution-1"))
}

func TestSolutionListCopyFailure(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	f.clip.err = errors.New("no clipboard utility")
	l := f.list

	msg := run(l.Copy("solution-1"))
	assert.NotPanics(t, func() { l.Update(msg) })

	notice, isErr := l.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, "no clipboard utility")
	assert.Contains(t, l.View(), "Primary Fuel System Diagnostic")
}

func TestSolutionListCopyKeyNeedsExpandedCard(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}))

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	msg := run(l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}))
	require.IsType(t, CopyResultMsg{}, msg)
}

func TestSolutionListProcedure(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	msg := run(l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}}))
	require.IsType(t, ProcedureMsg{}, msg)
	assert.Equal(t, "solution-1", msg.(ProcedureMsg).Solution.ID)

	proc := regionOf(t, l, regionProcedure, "solution-1")
	msg = run(l.Click(proc.left, proc.top))
	require.IsType(t, ProcedureMsg{}, msg)
	assert.True(t, l.IsExpanded("solution-1"))
}

// =============================================================================
// MOTION TESTS
// =============================================================================

func TestSolutionListAnimatesExpand(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	cmd := l.Toggle("solution-2")
	assert.NotNil(t, cmd, "an animating card schedules frames")
	assert.Equal(t, motion.PhaseExpanding, l.Phase("solution-2"))
	assert.True(t, l.IsExpanded("solution-2"))

	// A second toggle while ticking does not start another ticker.
	f.clock.Advance(50 * time.Millisecond)
	assert.Nil(t, l.Toggle("solution-2"))
	assert.Equal(t, motion.PhaseCollapsing, l.Phase("solution-2"))
	assert.True(t, l.Frame("solution-2").BodyVisible())

	// Frames for another list are ignored.
	assert.Nil(t, l.Update(FrameMsg{ListID: "other"}))

	f.clock.Advance(10 * time.Millisecond)
	assert.NotNil(t, l.Update(FrameMsg{ListID: l.ID()}))

	f.clock.Advance(motion.Resolve(false).CollapseDuration())
	assert.Nil(t, l.Update(FrameMsg{ListID: l.ID()}))
	assert.Equal(t, motion.PhaseCollapsed, l.Phase("solution-2"))
	assert.False(t, l.IsExpanded("solution-2"))
	assert.NotContains(t, l.View(), "J1939 interface")
}

func TestSolutionListExpandSettles(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	l.Toggle("solution-3")
	assert.False(t, l.Frame("solution-3").BodyVisible() && l.Frame("solution-3").Height >= 1)

	f.clock.Advance(motion.Resolve(false).ExpandDuration(4))
	l.Update(FrameMsg{ListID: l.ID()})
	assert.Equal(t, motion.PhaseExpanded, l.Phase("solution-3"))
	assert.Contains(t, l.View(), "adapter kit")
}

func TestSolutionListReducedMotionIsInstant(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.ReducedMotion = true })
	l := f.list

	assert.Nil(t, l.Toggle("solution-2"))
	assert.Equal(t, motion.PhaseExpanded, l.Phase("solution-2"))
	assert.Contains(t, l.View(), "J1939 interface")

	assert.Nil(t, l.Toggle("solution-2"))
	assert.Equal(t, motion.PhaseCollapsed, l.Phase("solution-2"))
}

func TestSolutionListPreferenceChangeMidFlight(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	l.Toggle("solution-2")
	f.clock.Advance(40 * time.Millisecond)
	require.Equal(t, motion.PhaseExpanding, l.Phase("solution-2"))

	l.Update(motion.PreferenceMsg{Reduced: true})
	assert.True(t, l.ReducedMotion())
	assert.Equal(t, motion.PhaseExpanded, l.Phase("solution-2"))
	assert.Equal(t, []string{"solution-1", "solution-2"}, l.Expanded())

	l.Update(motion.PreferenceMsg{Reduced: false})
	assert.False(t, l.ReducedMotion())
	l.Toggle("solution-1")
	assert.Equal(t, motion.PhaseCollapsing, l.Phase("solution-1"))
}

func TestSolutionListWatchDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion")
	require.NoError(t, os.WriteFile(path, []byte("no-preference"), 0o644))

	d := motion.NewDetector(log.New(io.Discard), motion.FileSource{Path: path})
	defer d.Close()

	f := newFixture(t, model.SampleSolutions())
	l := f.list

	var sent []tea.Msg
	l.Watch(d, func(msg tea.Msg) { sent = append(sent, msg) })
	assert.Equal(t, 1, d.Subscribers())
	assert.False(t, l.ReducedMotion())

	require.NoError(t, os.WriteFile(path, []byte("reduce"), 0o644))
	d.Refresh()
	require.Len(t, sent, 1)
	assert.Equal(t, motion.PreferenceMsg{Reduced: true}, sent[0])

	l.Update(sent[0])
	assert.True(t, l.ReducedMotion())

	l.Close()
	l.Close()
	assert.Equal(t, 0, d.Subscribers())
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestSolutionListCompactTruncatesCitation(t *testing.T) {
	f := newFixture(t, model.SampleSolutions())
	l := f.list

	assert.Contains(t, l.View(), "MTU 2000 Series Manual p.247")

	l.SetCompact(true)
	view := l.View()
	assert.Contains(t, view, "MTU 2000 Series M... p.247, Rev 2024.3")
	assert.Contains(t, view, "Engine Control Mo... p.156, Rev 2024.1")
	assert.Contains(t, view, "Adam's Maintenanc... p.23")

	// Compact never changes expansion or motion.
	assert.Equal(t, []string{"solution-1"}, l.Expanded())
	assert.False(t, l.ReducedMotion())
}

func TestSolutionListCompactStacksFooter(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.Compact = true })
	l := f.list

	proc := regionOf(t, l, regionProcedure, "solution-1")
	cp := regionOf(t, l, regionCopy, "solution-1")
	assert.Equal(t, proc.top+1, cp.top)

	msg := run(l.Click(cp.left, cp.top))
	require.IsType(t, CopyResultMsg{}, msg)
	assert.True(t, l.IsExpanded("solution-1"))
}

func TestSolutionListFullModeWrapsCitation(t *testing.T) {
	long := model.Solution{
		ID:         "long",
		Title:      "Filter Inspection",
		Confidence: model.ConfidenceHigh,
		Source:     model.Source{Title: "MTU 2000 Series Maintenance and Operation Manual", Page: model.IntPtr(247), Revision: "2024.3"},
		Steps:      []model.Step{{Text: "Shut down the engine."}},
	}
	f := newFixture(t, []model.Solution{long}, func(o *SolutionListOptions) {
		o.Width = 50
		o.Compact = false
		o.ReducedMotion = true
	})
	l := f.list

	lines := l.layout().lines
	var text []string
	lastCitationRow := -1
	for i, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 50, "line %q", line)
		trimmed := strings.Trim(line, "│ ")
		if trimmed != "" {
			text = append(text, trimmed)
		}
		if strings.Contains(line, "Rev 2024.3") {
			lastCitationRow = i
		}
	}
	assert.Contains(t, strings.Join(text, " "), long.Source.Citation())
	assert.NotContains(t, l.View(), "...")

	// Every citation row belongs to the header and toggles the card.
	require.Greater(t, lastCitationRow, 2)
	l.Click(3, lastCitationRow)
	assert.False(t, l.IsExpanded("long"))
}

func TestSolutionListCompactCollapsedCardIsTighter(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) {
		o.Compact = true
		o.ReducedMotion = true
	})

	var open, closed string
	for _, line := range f.list.layout().lines {
		switch {
		case strings.Contains(line, "Primary Fuel System"):
			open = line
		case strings.Contains(line, "Fuel Pressure Sensor"):
			closed = line
		}
	}
	require.NotEmpty(t, open)
	require.NotEmpty(t, closed)
	assert.True(t, strings.HasPrefix(open, "│  "), "open card line %q", open)
	assert.True(t, strings.HasPrefix(closed, "│ "), "closed card line %q", closed)
	assert.False(t, strings.HasPrefix(closed, "│  "), "closed card line %q", closed)
	assert.Equal(t, lipgloss.Width(open), lipgloss.Width(closed))
}

func TestSolutionListNarrowWidthWraps(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.Width = 40 })
	for _, line := range strings.Split(f.list.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40, "line %q", line)
	}
}

func TestSolutionListSetSolutionsReconciles(t *testing.T) {
	f := newFixture(t, model.SampleSolutions(), func(o *SolutionListOptions) { o.ReducedMotion = true })
	l := f.list
	all := model.SampleSolutions()

	l.Toggle("solution-3")
	require.Equal(t, []string{"solution-1", "solution-3"}, l.Expanded())

	// Reordering keeps expansion keyed by id.
	l.SetSolutions([]model.Solution{all[2], all[1], all[0]})
	assert.Equal(t, []string{"solution-3", "solution-1"}, l.Expanded())

	// Removed ids drop out and are not re-seeded.
	l.SetSolutions([]model.Solution{all[1]})
	assert.Empty(t, l.Expanded())
	assert.Equal(t, 0, l.Focus())
	assert.Nil(t, l.Toggle("solution-1"))
}

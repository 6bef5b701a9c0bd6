// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTransition(t *testing.T, expanded bool, steps int, reduced bool) *Transition {
	t.Helper()
	tr, err := NewTransition(expanded, steps, Resolve(reduced))
	require.NoError(t, err)
	t.Cleanup(tr.Close)
	return tr
}

func TestNewTransitionSettled(t *testing.T) {
	open := newTransition(t, true, 3, false)
	assert.Equal(t, PhaseExpanded, open.Phase())
	assert.False(t, open.Animating())

	f := open.Sample(epoch)
	assert.Equal(t, 1.0, f.Height)
	assert.Equal(t, Resting, f.Content)
	assert.Equal(t, ChevronExpanded, f.Chevron)
	assert.Equal(t, 1.0, f.Footer)
	require.Len(t, f.Steps, 3)
	for _, p := range f.Steps {
		assert.Equal(t, Resting, p)
	}

	closed := newTransition(t, false, 2, false)
	assert.Equal(t, PhaseCollapsed, closed.Phase())
	f = closed.Sample(epoch)
	assert.False(t, f.BodyVisible())
	assert.Equal(t, ChevronCollapsed, f.Chevron)
}

func TestExpandTimeline(t *testing.T) {
	tr := newTransition(t, false, 3, false)
	tr.Toggle(epoch)

	assert.Equal(t, PhaseExpanding, tr.Phase())
	assert.True(t, tr.Expanded())

	start := tr.Sample(epoch)
	assert.Equal(t, 0.0, start.Height)
	assert.Equal(t, 0.0, start.Content.Opacity)
	assert.Equal(t, -4.0, start.Content.OffsetY)
	assert.Equal(t, Pose{Opacity: 0, OffsetY: 8}, start.Steps[0])

	// Opacity is delayed 50ms, height starts immediately.
	f := tr.Sample(epoch.Add(40 * time.Millisecond))
	assert.Greater(t, f.Height, 0.0)
	assert.Equal(t, 0.0, f.Content.Opacity)
	assert.True(t, f.BodyVisible())

	// At 130ms step 0 has started, step 1 (160ms) has not.
	f = tr.Sample(epoch.Add(130 * time.Millisecond))
	assert.Greater(t, f.Steps[0].Opacity, 0.0)
	assert.Equal(t, Pose{Opacity: 0, OffsetY: 8}, f.Steps[1])
	assert.Equal(t, 0.0, f.Footer)

	// Chevron settles at 180ms.
	f = tr.Sample(epoch.Add(180 * time.Millisecond))
	assert.Equal(t, ChevronExpanded, f.Chevron)

	assert.True(t, tr.Advance(epoch.Add(469*time.Millisecond)))
	assert.False(t, tr.Advance(epoch.Add(470*time.Millisecond)))
	assert.Equal(t, PhaseExpanded, tr.Phase())
}

func TestCollapseKeepsStepsAndFooter(t *testing.T) {
	tr := newTransition(t, true, 2, false)
	tr.Toggle(epoch)
	assert.Equal(t, PhaseCollapsing, tr.Phase())
	assert.False(t, tr.Expanded())

	f := tr.Sample(epoch.Add(100 * time.Millisecond))
	assert.Greater(t, f.Height, 0.0)
	assert.Less(t, f.Height, 1.0)
	assert.Equal(t, 1.0, f.Footer)
	assert.Equal(t, Resting, f.Steps[1])

	assert.False(t, tr.Advance(epoch.Add(200*time.Millisecond)))
	assert.Equal(t, PhaseCollapsed, tr.Phase())

	// After the body unmounts the steps are hidden for the next mount.
	f = tr.Sample(epoch.Add(300 * time.Millisecond))
	assert.Equal(t, Pose{Opacity: 0, OffsetY: 8}, f.Steps[0])
	assert.Equal(t, 0.0, f.Footer)
}

func TestToggleInterruptsFromCurrentFrame(t *testing.T) {
	tr := newTransition(t, false, 1, false)
	tr.Toggle(epoch)

	mid := epoch.Add(100 * time.Millisecond)
	before := tr.Sample(mid)
	require.Greater(t, before.Height, 0.0)
	require.Less(t, before.Height, 1.0)

	tr.Toggle(mid)
	assert.Equal(t, PhaseCollapsing, tr.Phase())

	after := tr.Sample(mid)
	assert.InDelta(t, before.Height, after.Height, 1e-9)
	assert.InDelta(t, before.Chevron, after.Chevron, 1e-9)
	assert.InDelta(t, before.Content.Opacity, after.Content.Opacity, 1e-9)

	// Reversing again heads back toward expanded, still from the current frame.
	again := mid.Add(50 * time.Millisecond)
	h := tr.Sample(again).Height
	tr.Toggle(again)
	assert.Equal(t, PhaseExpanding, tr.Phase())
	assert.InDelta(t, h, tr.Sample(again).Height, 1e-9)
}

func TestReducedMotionSettlesImmediately(t *testing.T) {
	tr := newTransition(t, false, 4, true)
	tr.Toggle(epoch)

	assert.Equal(t, PhaseExpanded, tr.Phase())
	f := tr.Sample(epoch)
	assert.Equal(t, 1.0, f.Height)
	for _, p := range f.Steps {
		assert.Equal(t, Resting, p)
	}

	tr.Toggle(epoch)
	assert.Equal(t, PhaseCollapsed, tr.Phase())
	assert.False(t, tr.Sample(epoch).BodyVisible())
}

func TestSetSpecMidFlight(t *testing.T) {
	tr := newTransition(t, false, 2, false)
	tr.Toggle(epoch)
	require.True(t, tr.Animating())

	now := epoch.Add(60 * time.Millisecond)
	tr.SetSpec(Resolve(true), now)

	assert.Equal(t, PhaseExpanded, tr.Phase())
	assert.True(t, tr.Spec().Reduced)
	assert.Equal(t, 1.0, tr.Sample(now).Height)

	// And back to full motion: later toggles animate again.
	tr.SetSpec(Resolve(false), now)
	tr.Toggle(now)
	assert.Equal(t, PhaseCollapsing, tr.Phase())
}

func TestSetSteps(t *testing.T) {
	tr := newTransition(t, true, 2, false)
	tr.SetSteps(5)
	assert.Len(t, tr.Sample(epoch).Steps, 5)
	tr.SetSteps(-1)
	assert.Empty(t, tr.Sample(epoch).Steps)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"time"

	"github.com/felixgeelhaar/statekit"
)

// Phase is the visual phase of one card.
type Phase string

const (
	PhaseCollapsed  Phase = "collapsed"
	PhaseExpanding  Phase = "expanding"
	PhaseExpanded   Phase = "expanded"
	PhaseCollapsing Phase = "collapsing"
)

// State and event ids of the phase machine.
const (
	stateCollapsed  = "collapsed"
	stateExpanding  = "expanding"
	stateExpanded   = "expanded"
	stateCollapsing = "collapsing"

	eventToggle = "TOGGLE"
	eventSettle = "SETTLE"
)

// phaseContext is the statekit context type. The timeline itself lives on
// Transition, so the machine carries no data.
type phaseContext struct{}

// buildPhaseMachine constructs the per-card phase machine. A toggle while a
// transition is in flight reverses it; SETTLE ends it.
func buildPhaseMachine() (*statekit.Interpreter[phaseContext], error) {
	machine, err := statekit.NewMachine[phaseContext]("card-motion").
		WithInitial(stateCollapsed).
		WithContext(phaseContext{}).
		State(stateCollapsed).
		On(eventToggle).Target(stateExpanding).Done().
		State(stateExpanding).
		On(eventToggle).Target(stateCollapsing).
		On(eventSettle).Target(stateExpanded).Done().
		State(stateExpanded).
		On(eventToggle).Target(stateCollapsing).Done().
		State(stateCollapsing).
		On(eventToggle).Target(stateExpanding).
		On(eventSettle).Target(stateCollapsed).Done().
		Build()
	if err != nil {
		return nil, err
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return interp, nil
}

// Frame is the sampled visual state of a card at one instant.
type Frame struct {
	// Height is the revealed fraction of the body, 0 (hidden) to 1.
	Height float64
	// Content is the pose of the whole body block.
	Content Pose
	// Chevron is the indicator rotation in degrees.
	Chevron float64
	// Footer is the footer opacity.
	Footer float64
	// Steps holds one pose per step item.
	Steps []Pose
}

// BodyVisible reports whether any part of the body is on screen.
func (f Frame) BodyVisible() bool {
	return f.Height > 0
}

// Transition is the visual timeline of one card. Starting a transition never
// blocks: the caller samples frames on its own clock. A toggle during a
// transition starts the opposite one from the current visual state.
type Transition struct {
	spec   PhaseSpec
	steps  int
	interp *statekit.Interpreter[phaseContext]

	start time.Time
	from  Frame
}

// NewTransition creates a settled timeline for a card with the given number
// of steps.
func NewTransition(expanded bool, steps int, spec PhaseSpec) (*Transition, error) {
	interp, err := buildPhaseMachine()
	if err != nil {
		return nil, err
	}

	t := &Transition{spec: spec, steps: steps, interp: interp}
	if expanded {
		t.interp.Send(statekit.Event{Type: eventToggle})
		t.interp.Send(statekit.Event{Type: eventSettle})
	}
	return t, nil
}

// Phase returns the current phase.
func (t *Transition) Phase() Phase {
	return Phase(t.interp.State().Value)
}

// Expanded reports whether the card is expanded or expanding.
func (t *Transition) Expanded() bool {
	p := t.Phase()
	return p == PhaseExpanded || p == PhaseExpanding
}

// Animating reports whether a transition is in flight.
func (t *Transition) Animating() bool {
	p := t.Phase()
	return p == PhaseExpanding || p == PhaseCollapsing
}

// Spec returns the phase parameters in use.
func (t *Transition) Spec() PhaseSpec {
	return t.spec
}

// Toggle starts the opposite transition from the visual state at now.
func (t *Transition) Toggle(now time.Time) {
	t.from = t.Sample(now)
	t.start = now
	t.interp.Send(statekit.Event{Type: eventToggle})
	t.Advance(now)
}

// SetSpec replaces the phase parameters without restarting the card. An
// in-flight transition continues from its current visual state under the
// new timing; with reduced motion it settles immediately.
func (t *Transition) SetSpec(spec PhaseSpec, now time.Time) {
	if t.Animating() {
		t.from = t.Sample(now)
		t.start = now
	}
	t.spec = spec
	t.Advance(now)
}

// SetSteps updates the step count after the solution list was replaced.
func (t *Transition) SetSteps(n int) {
	if n < 0 {
		n = 0
	}
	t.steps = n
	t.from.Steps = resizePoses(t.from.Steps, n, t.spec.StepHidden)
}

// Advance settles a transition whose timeline has ended and reports whether
// the card is still animating.
func (t *Transition) Advance(now time.Time) bool {
	if !t.Animating() {
		return false
	}
	if now.Sub(t.start) >= t.duration() {
		t.interp.Send(statekit.Event{Type: eventSettle})
		return false
	}
	return true
}

// Close stops the phase machine.
func (t *Transition) Close() {
	t.interp.Stop()
}

func (t *Transition) duration() time.Duration {
	if t.Phase() == PhaseExpanding {
		return t.spec.ExpandDuration(t.steps)
	}
	return t.spec.CollapseDuration()
}

// Sample returns the frame at now. It does not change the timeline.
func (t *Transition) Sample(now time.Time) Frame {
	switch t.Phase() {
	case PhaseExpanded:
		return settledFrame(true, t.steps, t.spec)
	case PhaseExpanding:
		return t.sampleExpanding(now.Sub(t.start))
	case PhaseCollapsing:
		return t.sampleCollapsing(now.Sub(t.start))
	default:
		return settledFrame(false, t.steps, t.spec)
	}
}

func (t *Transition) sampleExpanding(e time.Duration) Frame {
	s := t.spec
	f := t.from
	enter := s.ContentEnter

	out := Frame{
		Height: lerp(f.Height, 1, enter.Height.Progress(e)),
		Content: Pose{
			Opacity: lerp(f.Content.Opacity, Resting.Opacity, enter.Opacity.Progress(e)),
			OffsetY: lerp(f.Content.OffsetY, Resting.OffsetY, enter.Tween.Progress(e)),
		},
		Chevron: lerp(f.Chevron, ChevronExpanded, s.ChevronExpand.Progress(e)),
		Footer:  lerp(f.Footer, 1, s.Footer.Progress(e)),
		Steps:   make([]Pose, t.steps),
	}

	from := resizePoses(f.Steps, t.steps, s.StepHidden)
	for i := range out.Steps {
		item := s.StepItem
		item.Delay += s.StepStagger.Delay(i)
		out.Steps[i] = lerpPose(from[i], Resting, item.Progress(e))
	}
	return out
}

// sampleCollapsing animates the body block and chevron. Step items and the
// footer keep their values until the body is removed.
func (t *Transition) sampleCollapsing(e time.Duration) Frame {
	s := t.spec
	f := t.from
	exit := s.ContentExit

	return Frame{
		Height: lerp(f.Height, 0, exit.Height.Progress(e)),
		Content: Pose{
			Opacity: lerp(f.Content.Opacity, s.ContentHidden.Opacity, exit.Opacity.Progress(e)),
			OffsetY: lerp(f.Content.OffsetY, s.ContentHidden.OffsetY, exit.Tween.Progress(e)),
		},
		Chevron: lerp(f.Chevron, ChevronCollapsed, s.ChevronCollapse.Progress(e)),
		Footer:  f.Footer,
		Steps:   resizePoses(f.Steps, t.steps, s.StepHidden),
	}
}

func settledFrame(expanded bool, steps int, spec PhaseSpec) Frame {
	if expanded {
		return Frame{
			Height:  1,
			Content: Resting,
			Chevron: ChevronExpanded,
			Footer:  1,
			Steps:   resizePoses(nil, steps, Resting),
		}
	}
	return Frame{
		Height:  0,
		Content: spec.ContentHidden,
		Chevron: ChevronCollapsed,
		Footer:  0,
		Steps:   resizePoses(nil, steps, spec.StepHidden),
	}
}

// resizePoses returns a copy of poses with length n, filling new slots with fill.
func resizePoses(poses []Pose, n int, fill Pose) []Pose {
	out := make([]Pose, n)
	for i := range out {
		if i < len(poses) {
			out[i] = poses[i]
		} else {
			out[i] = fill
		}
	}
	return out
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func lerpPose(a, b Pose, p float64) Pose {
	return Pose{Opacity: lerp(a.Opacity, b.Opacity, p), OffsetY: lerp(a.OffsetY, b.OffsetY, p)}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import "time"

// Tween is the timing of one animated property.
type Tween struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   Bezier
}

// End returns the time after the start at which the tween settles.
func (t Tween) End() time.Duration {
	return t.Delay + t.Duration
}

// Progress returns eased progress in [0,1] at elapsed time e.
func (t Tween) Progress(e time.Duration) float64 {
	if e < t.Delay {
		return 0
	}
	if t.Duration <= 0 {
		return 1
	}
	p := float64(e-t.Delay) / float64(t.Duration)
	if p >= 1 {
		return 1
	}
	return t.Easing.Ease(p)
}

// ContentTransition is the timing of the card body between collapsed and
// expanded. The whole-block tween drives the vertical offset; height and
// opacity have their own overrides.
type ContentTransition struct {
	Tween
	Height  Tween
	Opacity Tween
}

// End returns when the slowest property of the transition settles.
func (c ContentTransition) End() time.Duration {
	return maxDuration(c.Tween.End(), c.Height.End(), c.Opacity.End())
}

// Stagger delays each child of a list relative to the previous one.
type Stagger struct {
	DelayChildren time.Duration
	Interval      time.Duration
}

// Delay returns the start delay of child i.
func (s Stagger) Delay(i int) time.Duration {
	if i < 0 {
		i = 0
	}
	return s.DelayChildren + time.Duration(i)*s.Interval
}

// Pose is the opacity and vertical offset (in pixels) of an element.
type Pose struct {
	Opacity float64
	OffsetY float64
}

// Resting is the fully visible, unshifted pose.
var Resting = Pose{Opacity: 1, OffsetY: 0}

// PhaseSpec holds the animation parameters of every card phase.
// It is a pure value derived from the motion preference.
type PhaseSpec struct {
	Reduced bool

	// Container is the card frame. It has no animated property.
	Container Tween

	ContentEnter ContentTransition
	ContentExit  ContentTransition

	ChevronExpand   Tween
	ChevronCollapse Tween

	StepStagger Stagger
	StepItem    Tween

	Footer Tween

	// Hidden poses the content block and step items start from (enter) or
	// end at (exit).
	ContentHidden Pose
	StepHidden    Pose
}

// ChevronCollapsed and ChevronExpanded are the chevron rotations in degrees.
const (
	ChevronCollapsed = 0.0
	ChevronExpanded  = 90.0
)

// Resolve returns the phase parameters for a motion preference.
//
// With reduced motion every phase resolves to its end state instantly; the
// structural change between collapsed and expanded still happens.
func Resolve(reduced bool) PhaseSpec {
	if reduced {
		return PhaseSpec{
			Reduced:       true,
			ContentHidden: Resting,
			StepHidden:    Resting,
		}
	}

	return PhaseSpec{
		ContentEnter: ContentTransition{
			Tween:   Tween{Duration: 280 * time.Millisecond, Easing: EaseStandard},
			Height:  Tween{Duration: 250 * time.Millisecond, Easing: EaseStandard},
			Opacity: Tween{Duration: 200 * time.Millisecond, Delay: 50 * time.Millisecond, Easing: EaseStandard},
		},
		ContentExit: ContentTransition{
			Tween:   Tween{Duration: 200 * time.Millisecond, Easing: EaseStandard},
			Height:  Tween{Duration: 180 * time.Millisecond, Easing: EaseStandard},
			Opacity: Tween{Duration: 150 * time.Millisecond, Easing: EaseStandard},
		},
		ChevronExpand:   Tween{Duration: 180 * time.Millisecond, Easing: EaseStandard},
		ChevronCollapse: Tween{Duration: 180 * time.Millisecond, Easing: EaseStandard},
		StepStagger: Stagger{
			DelayChildren: 100 * time.Millisecond,
			Interval:      60 * time.Millisecond,
		},
		StepItem:      Tween{Duration: 250 * time.Millisecond, Easing: EaseStandard},
		Footer:        Tween{Duration: 200 * time.Millisecond, Delay: 150 * time.Millisecond, Easing: EaseStandard},
		ContentHidden: Pose{Opacity: 0, OffsetY: -4},
		StepHidden:    Pose{Opacity: 0, OffsetY: 8},
	}
}

// ExpandDuration returns how long an expand takes for a card with n steps.
func (s PhaseSpec) ExpandDuration(n int) time.Duration {
	d := maxDuration(s.ContentEnter.End(), s.ChevronExpand.End(), s.Footer.End(), s.Container.End())
	if n > 0 {
		d = maxDuration(d, s.StepStagger.Delay(n-1)+s.StepItem.End())
	}
	return d
}

// CollapseDuration returns how long a collapse takes.
func (s PhaseSpec) CollapseDuration() time.Duration {
	return maxDuration(s.ContentExit.End(), s.ChevronCollapse.End(), s.Container.End())
}

func maxDuration(ds ...time.Duration) time.Duration {
	var m time.Duration
	for _, d := range ds {
		if d > m {
			m = d
		}
	}
	return m
}

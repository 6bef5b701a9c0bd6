// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import "math"

// Bezier is a CSS-style cubic-bezier timing curve with fixed end points
// (0,0) and (1,1) and control points (X1,Y1), (X2,Y2).
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

// EaseStandard is the curve every card phase uses: cubic-bezier(0.22, 0.61, 0.36, 1),
// a close relative of the classic ease-out-cubic.
var EaseStandard = Bezier{X1: 0.22, Y1: 0.61, X2: 0.36, Y2: 1}

// Linear is the identity curve.
var Linear = Bezier{X1: 0, Y1: 0, X2: 1, Y2: 1}

const (
	newtonIterations = 8
	newtonEpsilon    = 1e-7
	bisectEpsilon    = 1e-7
	bisectIterations = 64
)

// Ease maps linear progress t in [0,1] to eased progress.
func (b Bezier) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if b.X1 == b.Y1 && b.X2 == b.Y2 {
		return t
	}
	return sampleCurve(b.Y1, b.Y2, b.solveX(t))
}

// solveX finds the curve parameter whose x coordinate equals x.
func (b Bezier) solveX(x float64) float64 {
	// Newton-Raphson converges fast on well-behaved curves.
	u := x
	for i := 0; i < newtonIterations; i++ {
		dx := sampleCurve(b.X1, b.X2, u) - x
		if math.Abs(dx) < newtonEpsilon {
			return u
		}
		d := sampleDerivative(b.X1, b.X2, u)
		if math.Abs(d) < 1e-6 {
			break
		}
		u -= dx / d
	}

	// Fall back to bisection; x(u) is monotonic for x control points in [0,1].
	lo, hi := 0.0, 1.0
	u = x
	for i := 0; i < bisectIterations; i++ {
		v := sampleCurve(b.X1, b.X2, u)
		if math.Abs(v-x) < bisectEpsilon {
			return u
		}
		if v < x {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// sampleCurve evaluates one coordinate of the bezier at parameter u using
// Horner's form of 3(1-u)^2 u p1 + 3(1-u) u^2 p2 + u^3.
func sampleCurve(p1, p2, u float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return ((a*u+b)*u + c) * u
}

func sampleDerivative(p1, p2, u float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return (3*a*u+2*b)*u + c
}

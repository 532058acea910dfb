package gesture

import "math"

// Easing is a CSS-style cubic-bezier timing curve anchored at (0,0) and (1,1).
type Easing struct {
	X1, Y1, X2, Y2 float64
}

var (
	Linear   = Easing{0, 0, 1, 1}
	Ease     = Easing{0.25, 0.1, 0.25, 1}
	SnapBack = Easing{0.22, 1, 0.36, 1}
)

// At maps linear progress t to eased progress.
func (e Easing) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return cubic(e.Y1, e.Y2, e.solve(t))
}

// solve finds the curve parameter whose x equals t. Newton first, then
// bisection when the slope is too flat to trust.
func (e Easing) solve(t float64) float64 {
	u := t
	for i := 0; i < 8; i++ {
		x := cubic(e.X1, e.X2, u) - t
		if math.Abs(x) < 1e-7 {
			return u
		}
		d := cubicSlope(e.X1, e.X2, u)
		if math.Abs(d) < 1e-6 {
			break
		}
		u -= x / d
	}
	lo, hi := 0.0, 1.0
	u = t
	for i := 0; i < 30; i++ {
		x := cubic(e.X1, e.X2, u)
		if math.Abs(x-t) < 1e-7 {
			return u
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func cubic(a1, a2, u float64) float64 {
	v := 1 - u
	return 3*v*v*u*a1 + 3*v*u*u*a2 + u*u*u
}

func cubicSlope(a1, a2, u float64) float64 {
	v := 1 - u
	return 3*v*v*a1 + 6*v*u*(a2-a1) + 3*u*u*(1-a2)
}

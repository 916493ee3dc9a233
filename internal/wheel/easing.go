package wheel

import "math"

// CubicBezier is a CSS-style timing curve anchored at (0,0) and (1,1).
type CubicBezier struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// SpinEasing is the deceleration curve every spin animation uses.
var SpinEasing = CubicBezier{X1: 0.2, Y1: 0.8, X2: 0.3, Y2: 1}

const (
	bezierEpsilon    = 1e-9
	newtonIterations = 8
)

// Ease maps normalized time p in [0,1] to normalized progress.
func (b CubicBezier) Ease(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return bezierAt(b.solveX(p), b.Y1, b.Y2)
}

// Points returns the control points in CSS order.
func (b CubicBezier) Points() [4]float64 {
	return [4]float64{b.X1, b.Y1, b.X2, b.Y2}
}

// solveX finds the curve parameter s with x(s) == x.
func (b CubicBezier) solveX(x float64) float64 {
	s := x
	for i := 0; i < newtonIterations; i++ {
		diff := bezierAt(s, b.X1, b.X2) - x
		if math.Abs(diff) < bezierEpsilon {
			return s
		}
		d := bezierSlope(s, b.X1, b.X2)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= diff / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for lo < hi {
		v := bezierAt(s, b.X1, b.X2)
		if math.Abs(v-x) < bezierEpsilon {
			return s
		}
		if x > v {
			lo = s
		} else {
			hi = s
		}
		next := (lo + hi) / 2
		if next == s {
			break
		}
		s = next
	}
	return s
}

func bezierAt(s, c1, c2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*c1 + 3*u*s*s*c2 + s*s*s
}

func bezierSlope(s, c1, c2 float64) float64 {
	u := 1 - s
	return 3*u*u*c1 + 6*u*s*(c2-c1) + 3*s*s*(1-c2)
}

package axiom

import (
	"math"
	"sort"
)

// solveCubic returns the distinct real roots of a·t³ + b·t² + c·t + d = 0
// in ascending order. Vanishing leading coefficients degrade to the
// quadratic and linear cases.
func solveCubic(a, b, c, d float64) []float64 {
	scale := math.Max(math.Max(math.Abs(a), math.Abs(b)), math.Max(math.Abs(c), math.Abs(d)))
	if scale == 0 {
		return nil
	}
	a, b, c, d = a/scale, b/scale, c/scale, d/scale

	const small = 1e-12
	var roots []float64
	switch {
	case math.Abs(a) > small:
		roots = cubicRoots(b/a, c/a, d/a)
	case math.Abs(b) > small:
		roots = quadraticRoots(b, c, d)
	case math.Abs(c) > small:
		roots = []float64{-d / c}
	default:
		return nil
	}

	for i, t := range roots {
		roots[i] = polish(a, b, c, d, t)
	}
	sort.Float64s(roots)
	out := roots[:0]
	for _, t := range roots {
		if len(out) > 0 && math.Abs(t-out[len(out)-1]) < 1e-9 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// cubicRoots solves the monic t³ + b·t² + c·t + d = 0.
func cubicRoots(b, c, d float64) []float64 {
	// Depressed form t = x − b/3: x³ + p·x + q = 0.
	shift := b / 3
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d

	disc := q*q/4 + p*p*p/27
	switch {
	case math.Abs(disc) < 1e-14:
		if math.Abs(p) < 1e-14 {
			return []float64{-shift}
		}
		u := math.Cbrt(-q / 2)
		return []float64{2*u - shift, -u - shift}
	case disc > 0:
		s := math.Sqrt(disc)
		x := math.Cbrt(-q/2+s) + math.Cbrt(-q/2-s)
		return []float64{x - shift}
	default:
		r := 2 * math.Sqrt(-p/3)
		phi := math.Acos(clamp(3*q/(p*r), -1, 1)) / 3
		return []float64{
			r*math.Cos(phi) - shift,
			r*math.Cos(phi-2*math.Pi/3) - shift,
			r*math.Cos(phi-4*math.Pi/3) - shift,
		}
	}
}

func quadraticRoots(a, b, c float64) []float64 {
	disc := b*b - 4*a*c
	switch {
	case disc < -1e-14:
		return nil
	case disc <= 1e-14:
		return []float64{-b / (2 * a)}
	}
	s := math.Sqrt(disc)
	// Avoid cancellation in the smaller root.
	q := -(b + math.Copysign(s, b)) / 2
	if q == 0 {
		return []float64{0}
	}
	return []float64{q / a, c / q}
}

func polish(a, b, c, d, t float64) float64 {
	for i := 0; i < 4; i++ {
		f := ((a*t+b)*t+c)*t + d
		df := (3*a*t+2*b)*t + c
		if df == 0 {
			break
		}
		next := t - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		t = next
	}
	return t
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

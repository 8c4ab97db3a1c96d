package axiom

import (
	"math"

	"github.com/chazu/origami/pkg/geom"
)

// Constructor evaluates the axioms under a given tolerance. The zero value
// uses geom.DefaultTolerance.
type Constructor struct {
	Tol geom.Tolerance
}

var std = Constructor{Tol: geom.DefaultTolerance}

func (c Constructor) tol() geom.Tolerance {
	if c.Tol.MaxDistance <= 0 || c.Tol.Epsilon <= 0 {
		return geom.DefaultTolerance
	}
	return c.Tol
}

// O1 returns the line through p0 and p1.
func (c Constructor) O1(p0, p1 geom.Point) []geom.Line {
	l, err := geom.LineThrough(p0, p1)
	if err != nil {
		return nil
	}
	return []geom.Line{l}
}

// O2 returns the perpendicular bisector of p0 and p1, the fold that places
// p0 onto p1. The normal is p1−p0 and is not normalized.
func (c Constructor) O2(p0, p1 geom.Point) []geom.Line {
	n := p1.Sub(p0)
	if n.Magnitude2() == 0 {
		return nil
	}
	off := (n.Dot(p0.Vector()) + n.Dot(p1.Vector())) / 2
	return []geom.Line{{Normal: n, Offset: off}}
}

// O3 returns the bisectors of the angle between l0 and l1. Both branches
// are produced; a branch whose normal is perpendicular to either input
// normal is skipped, so parallel inputs give only the midline.
func (c Constructor) O3(l0, l1 geom.Line) []geom.Line {
	a, err := l0.Normalize()
	if err != nil {
		return nil
	}
	b, err := l1.Normalize()
	if err != nil {
		return nil
	}
	maxDist := c.tol().MaxDistance

	theta := (math.Atan2(a.Normal.Y, a.Normal.X) + math.Atan2(b.Normal.Y, b.Normal.X)) / 2
	cos, sin := math.Cos(theta), math.Sin(theta)

	var out []geom.Line
	for _, n := range []geom.Vector{geom.Vec(cos, sin), geom.Vec(-sin, cos)} {
		da, db := a.Normal.Dot(n), b.Normal.Dot(n)
		if da == 0 || db == 0 {
			continue
		}
		if math.Abs(a.Offset) > math.Abs(maxDist*da) || math.Abs(b.Offset) > math.Abs(maxDist*db) {
			continue
		}
		off := (a.Offset/da + b.Offset/db) / 2
		out = append(out, geom.Line{Normal: n, Offset: off})
	}
	return out
}

// O4 returns the line through p perpendicular to l.
func (c Constructor) O4(p geom.Point, l geom.Line) []geom.Line {
	if l.Normal.Magnitude2() == 0 {
		return nil
	}
	return []geom.Line{geom.PerpendicularLine(l, p)}
}

// O5 returns the folds through p0 that carry p1 onto l. The image of p1 is
// a point of l at distance |p1−p0| from p0; there are zero, one or two.
func (c Constructor) O5(p0, p1 geom.Point, l geom.Line) []geom.Line {
	u, err := l.Normalize()
	if err != nil {
		return nil
	}
	start := p0.Minus(u.Normal.Scale(u.Eval(p0)))
	disc := p1.Sub(p0).Magnitude2() - start.Sub(p0).Magnitude2()

	tiny := c.tol().Epsilon * c.tol().Epsilon * 1e-6
	switch {
	case disc < -tiny:
		return nil
	case disc <= tiny:
		return c.O2(start, p1)
	}
	d := math.Sqrt(disc)
	dir := u.Normal.Perpendicular()
	var out []geom.Line
	out = append(out, c.O2(start.Add(dir.Scale(d)), p1)...)
	out = append(out, c.O2(start.Minus(dir.Scale(d)), p1)...)
	return out
}

// O6 returns the folds that place p0 onto l0 and p1 onto l1 at once. The
// image of p0 is parameterized along l0, which turns the condition on p1
// into a cubic; up to three candidates result.
func (c Constructor) O6(p0, p1 geom.Point, l0, l1 geom.Line) []geom.Line {
	a, err := l0.Normalize()
	if err != nil {
		return nil
	}
	b, err := l1.Normalize()
	if err != nil {
		return nil
	}
	u, err := a.Direction()
	if err != nil {
		return nil
	}

	foot := p0.Minus(a.Normal.Scale(a.Eval(p0)))
	w := foot.Sub(p0)
	k := b.Eval(p1)
	a1 := b.Normal.Dot(w)
	b1 := b.Normal.Dot(u)
	e0 := w.Dot(p1.Vector()) - (foot.Vector().Magnitude2()-p0.Vector().Magnitude2())/2
	e1 := u.Dot(p1.Vector()) - foot.Vector().Dot(u)

	roots := solveCubic(
		-b1,
		2*b1*e1-a1-k,
		2*(a1*e1+b1*e0),
		2*a1*e0-k*w.Magnitude2(),
	)

	eps := c.tol().Epsilon
	var out []geom.Line
	for _, t := range roots {
		q := foot.Add(u.Scale(t))
		if q.Near(p0, eps*1e-3) {
			continue
		}
		out = append(out, c.O2(p0, q)...)
	}
	return out
}

// O7 returns the fold perpendicular to l0 that places p onto l1.
func (c Constructor) O7(p geom.Point, l0, l1 geom.Line) []geom.Line {
	if l0.Normal.Magnitude2() == 0 {
		return nil
	}
	x, err := c.tol().Intersect(geom.ParallelLine(l0, p), l1)
	if err != nil {
		return nil
	}
	return c.O2(p, x)
}

// O1 is the default Constructor's O1.
func O1(p0, p1 geom.Point) []geom.Line { return std.O1(p0, p1) }

// O2 is the default Constructor's O2.
func O2(p0, p1 geom.Point) []geom.Line { return std.O2(p0, p1) }

// O3 is the default Constructor's O3.
func O3(l0, l1 geom.Line) []geom.Line { return std.O3(l0, l1) }

// O4 is the default Constructor's O4.
func O4(p geom.Point, l geom.Line) []geom.Line { return std.O4(p, l) }

// O5 is the default Constructor's O5.
func O5(p0, p1 geom.Point, l geom.Line) []geom.Line { return std.O5(p0, p1, l) }

// O6 is the default Constructor's O6.
func O6(p0, p1 geom.Point, l0, l1 geom.Line) []geom.Line { return std.O6(p0, p1, l0, l1) }

// O7 is the default Constructor's O7.
func O7(p geom.Point, l0, l1 geom.Line) []geom.Line { return std.O7(p, l0, l1) }

package geom

import "math"

// Default tolerance constants for the unit-square canvas.
const (
	// DefaultMaxDistance bounds every genuine intersection; solutions
	// farther from the origin are treated as near-parallel noise.
	DefaultMaxDistance = 1000

	// DefaultEpsilon is the on-line classification band used by the splitter.
	DefaultEpsilon = 1e-3
)

// Tolerance groups the scale-coupled numeric guards.
type Tolerance struct {
	MaxDistance float64
	Epsilon     float64
}

// DefaultTolerance matches a sheet living in [0,1]×[0,1].
var DefaultTolerance = Tolerance{
	MaxDistance: DefaultMaxDistance,
	Epsilon:     DefaultEpsilon,
}

// ToleranceFor scales the default constants to a canvas whose largest
// dimension is extent. A non-positive extent returns DefaultTolerance.
func ToleranceFor(extent float64) Tolerance {
	if extent <= 0 || math.IsInf(extent, 0) || math.IsNaN(extent) {
		return DefaultTolerance
	}
	return Tolerance{
		MaxDistance: DefaultMaxDistance * extent,
		Epsilon:     DefaultEpsilon * extent,
	}
}

// orDefault fills zero fields from DefaultTolerance.
func (t Tolerance) orDefault() Tolerance {
	if t.MaxDistance <= 0 {
		t.MaxDistance = DefaultMaxDistance
	}
	if t.Epsilon <= 0 {
		t.Epsilon = DefaultEpsilon
	}
	return t
}

// Intersect solves the 2×2 system for lines a and b with Cramer's rule.
// The guard |xdet| < |MaxDistance·det| (and likewise for y) rejects
// near-parallel pairs without an epsilon on det itself.
func (t Tolerance) Intersect(a, b Line) (Point, error) {
	t = t.orDefault()
	det := a.Normal.Cross(b.Normal)
	xdet := a.Offset*b.Normal.Y - a.Normal.Y*b.Offset
	ydet := a.Normal.X*b.Offset - a.Offset*b.Normal.X

	bound := math.Abs(t.MaxDistance * det)
	if math.Abs(xdet) < bound && math.Abs(ydet) < bound {
		return Point{X: xdet / det, Y: ydet / det}, nil
	}
	return Point{}, ErrNoIntersection
}

// IntersectLineSegment intersects l with the line through s and keeps the
// result only when it lies strictly within s.
func (t Tolerance) IntersectLineSegment(l Line, s Segment) (Point, error) {
	sl, err := s.Line()
	if err != nil {
		return Point{}, err
	}
	p, err := t.Intersect(l, sl)
	if err != nil {
		return Point{}, err
	}
	if !IsPointWithinSegment(p, s) {
		return Point{}, ErrNoIntersection
	}
	return p, nil
}

// Parity classifies p against l: 0 when p is within Epsilon of the line,
// otherwise the sign of normal·p − offset.
func (t Tolerance) Parity(p Point, l Line) int {
	t = t.orDefault()
	d := p.Vector().Dot(l.Normal) - l.Offset
	if math.Abs(d) < t.Epsilon {
		return 0
	}
	if d < 0 {
		return -1
	}
	return 1
}

// Intersect is DefaultTolerance.Intersect.
func Intersect(a, b Line) (Point, error) {
	return DefaultTolerance.Intersect(a, b)
}

// IntersectLineSegment is DefaultTolerance.IntersectLineSegment.
func IntersectLineSegment(l Line, s Segment) (Point, error) {
	return DefaultTolerance.IntersectLineSegment(l, s)
}

// Parity is DefaultTolerance.Parity.
func Parity(p Point, l Line) int {
	return DefaultTolerance.Parity(p, l)
}

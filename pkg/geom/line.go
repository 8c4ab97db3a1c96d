package geom

import (
	"fmt"
	"math"
)

// Line is the set {p : Normal·p = Offset}. The normal is not normalized
// a priori; operations that need a unit normal say so.
type Line struct {
	Normal Vector
	Offset float64
}

// Normalize rescales the line so its normal has unit length. The point set
// is unchanged.
func (l Line) Normalize() (Line, error) {
	m := l.Normal.Magnitude()
	if m == 0 {
		return Line{}, ErrDegenerateVector
	}
	return Line{Normal: l.Normal.Scale(1 / m), Offset: l.Offset / m}, nil
}

// Direction returns the unit tangent of the line, Normal rotated by -90°.
func (l Line) Direction() (Vector, error) {
	return l.Normal.Perpendicular().Normalize()
}

// Eval returns normal·p − offset, the signed distance scaled by |normal|.
func (l Line) Eval(p Point) float64 {
	return l.Normal.Dot(p.Vector()) - l.Offset
}

func (l Line) String() string {
	return fmt.Sprintf("Line(%v, %g)", l.Normal, l.Offset)
}

// LineFromPointNormal returns the line with the given normal through p.
func LineFromPointNormal(p Point, normal Vector) Line {
	return Line{Normal: normal, Offset: normal.Dot(p.Vector())}
}

// LineThrough returns the line through p0 and p1 with a unit normal.
func LineThrough(p0, p1 Point) (Line, error) {
	return Segment{Start: p0, End: p1}.Line()
}

// DistanceToLine returns |normal·p − offset|. This is the Euclidean
// distance only when the normal has unit length.
func DistanceToLine(p Point, l Line) float64 {
	return math.Abs(l.Eval(p))
}

// ParallelLine returns the line through p sharing l's normal.
func ParallelLine(l Line, p Point) Line {
	return LineFromPointNormal(p, l.Normal)
}

// PerpendicularLine returns the line through p whose normal is l's normal
// rotated by 90°.
func PerpendicularLine(l Line, p Point) Line {
	return LineFromPointNormal(p, l.Normal.Perpendicular())
}

// Reflect mirrors p across l. The normal must be unit length.
func Reflect(p Point, l Line) Point {
	return p.Minus(l.Normal.Scale(2 * l.Eval(p)))
}

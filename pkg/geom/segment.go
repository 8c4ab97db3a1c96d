package geom

import "fmt"

// Segment is a directed pair of points.
type Segment struct {
	Start, End Point
}

// Seg is a convenience constructor for Segment.
func Seg(start, end Point) Segment {
	return Segment{Start: start, End: end}
}

// Points returns the two endpoints.
func (s Segment) Points() [2]Point {
	return [2]Point{s.Start, s.End}
}

// Length returns the Euclidean length.
func (s Segment) Length() float64 {
	return s.End.Sub(s.Start).Magnitude()
}

// Length2 returns the squared length.
func (s Segment) Length2() float64 {
	return s.End.Sub(s.Start).Magnitude2()
}

// Reversed returns the segment with its direction flipped.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Line returns the line through the segment. The normal is the direction
// rotated by 90° and normalized; the offset is normal·start.
func (s Segment) Line() (Line, error) {
	n, err := s.End.Sub(s.Start).Perpendicular().Normalize()
	if err != nil {
		return Line{}, fmt.Errorf("segment %v line: %w", s, err)
	}
	return LineFromPointNormal(s.Start, n), nil
}

// Key returns an undirected identity for s, used to deduplicate edges that
// two glued facets traverse in opposite directions.
func (s Segment) Key() Segment {
	if s.End.X < s.Start.X || (s.End.X == s.Start.X && s.End.Y < s.Start.Y) {
		return s.Reversed()
	}
	return s
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%v, %v)", s.Start, s.End)
}

// IsPointWithinSegment reports whether p is strictly closer to both ends
// of s than the ends are to each other. It approximates "between" and
// assumes p already lies on the line through s.
func IsPointWithinSegment(p Point, s Segment) bool {
	l2 := s.Length2()
	return p.Distance2(s.Start) < l2 && p.Distance2(s.End) < l2
}

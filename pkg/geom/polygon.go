package geom

import (
	"fmt"
	"math"
)

// Polygon is an ordered, implicitly closed sequence of points. Edge i runs
// from Points[i] to Points[(i+1) mod n]. Polygons are assumed simple; the
// splitter does not validate this.
type Polygon struct {
	Points []Point
}

// Poly is a convenience constructor for Polygon.
func Poly(points ...Point) Polygon {
	return Polygon{Points: points}
}

// UnitSquare returns [(0,0), (0,1), (1,1), (1,0)].
func UnitSquare() Polygon {
	return Poly(Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0))
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Points)
}

// Edge returns edge i.
func (p Polygon) Edge(i int) Segment {
	n := len(p.Points)
	return Segment{Start: p.Points[i%n], End: p.Points[(i+1)%n]}
}

// Segments returns every edge in order.
func (p Polygon) Segments() []Segment {
	segs := make([]Segment, len(p.Points))
	for i := range p.Points {
		segs[i] = p.Edge(i)
	}
	return segs
}

// Clone returns a deep copy.
func (p Polygon) Clone() Polygon {
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	return Polygon{Points: pts}
}

// Perimeter returns the total edge length.
func (p Polygon) Perimeter() float64 {
	var sum float64
	for _, s := range p.Segments() {
		sum += s.Length()
	}
	return sum
}

// SignedArea returns the shoelace area; positive for counter-clockwise
// winding.
func (p Polygon) SignedArea() float64 {
	var sum float64
	n := len(p.Points)
	for i := range p.Points {
		a, b := p.Points[i], p.Points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the absolute area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() (min, max Point) {
	if len(p.Points) == 0 {
		return Point{}, Point{}
	}
	min, max = p.Points[0], p.Points[0]
	for _, q := range p.Points[1:] {
		min.X = math.Min(min.X, q.X)
		min.Y = math.Min(min.Y, q.Y)
		max.X = math.Max(max.X, q.X)
		max.Y = math.Max(max.Y, q.Y)
	}
	return min, max
}

// Extent returns the largest side of the bounding box.
func (p Polygon) Extent() float64 {
	min, max := p.Bounds()
	return math.Max(max.X-min.X, max.Y-min.Y)
}

// Reflect mirrors every vertex across l. Vertex order is kept, so the
// winding flips. The normal must be unit length.
func (p Polygon) Reflect(l Line) Polygon {
	out := make([]Point, len(p.Points))
	for i, q := range p.Points {
		out[i] = Reflect(q, l)
	}
	return Polygon{Points: out}
}

// Insert returns a copy of p with q inserted at position pos, splitting
// edge pos-1.
func (p Polygon) Insert(pos int, q Point) Polygon {
	pts := make([]Point, 0, len(p.Points)+1)
	pts = append(pts, p.Points[:pos]...)
	pts = append(pts, q)
	pts = append(pts, p.Points[pos:]...)
	return Polygon{Points: pts}
}

// Near reports whether p and q have the same vertex sequence within eps.
func (p Polygon) Near(q Polygon, eps float64) bool {
	if len(p.Points) != len(q.Points) {
		return false
	}
	for i := range p.Points {
		if !p.Points[i].Near(q.Points[i], eps) {
			return false
		}
	}
	return true
}

func (p Polygon) String() string {
	return fmt.Sprintf("Polygon(%v)", p.Points)
}

package geom

import "fmt"

// SplitResult is the outcome of cutting a polygon along a line.
//
// Side 0 holds the material on the negative side of the line (parity −1),
// side 1 the positive side. A side that accumulated fewer than three points
// is nil. When both sides are present, Crease is the shared new edge and
// SegmentIdxs[s] is the index of that edge within Polygons[s].
type SplitResult struct {
	Polygons    [2]*Polygon
	Crease      *Segment
	SegmentIdxs [2]int

	// PointMappings[s][k] is the original vertex index output vertex k came
	// from. Inserted crease points map to the index of the edge they lie on.
	PointMappings [2][]int

	// EdgeMappings[s][k] is the original edge index output edge k lies
	// along, or -1 for the crease edge.
	EdgeMappings [2][]int
}

// Sides reports how many output polygons are non-nil.
func (r SplitResult) Sides() int {
	n := 0
	for _, p := range r.Polygons {
		if p != nil {
			n++
		}
	}
	return n
}

// EdgeCrossing is a point where a line crosses edge Edge of a polygon.
type EdgeCrossing struct {
	Point Point
	Edge  int
}

// splitVertex tags an output vertex with where it came from: either an
// original vertex (orig >= 0) or a crossing on edge `edge`.
type splitVertex struct {
	p    Point
	orig int
	edge int
}

// Parities classifies every vertex of poly against l.
func (t Tolerance) Parities(poly Polygon, l Line) []int {
	out := make([]int, len(poly.Points))
	for i, p := range poly.Points {
		out[i] = t.Parity(p, l)
	}
	return out
}

// TestLine returns +1 when no vertex of poly is strictly on the negative
// side of l, -1 when none is strictly on the positive side and 0 when
// vertices exist on both strict sides (the polygon must be split).
func (t Tolerance) TestLine(poly Polygon, l Line) int {
	var neg, pos bool
	for _, p := range poly.Points {
		switch t.Parity(p, l) {
		case -1:
			neg = true
		case 1:
			pos = true
		}
	}
	switch {
	case neg && pos:
		return 0
	case neg:
		return -1
	default:
		return 1
	}
}

// IntersectPolygonLine returns the crossing points of l with the edges of
// poly whose endpoints lie on strictly opposite sides, in edge order. Edges
// touching the line at a vertex are not reported.
func (t Tolerance) IntersectPolygonLine(poly Polygon, l Line) []EdgeCrossing {
	par := t.Parities(poly, l)
	n := len(poly.Points)
	var out []EdgeCrossing
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if par[i]*par[j] != -1 {
			continue
		}
		x, err := t.crossing(l, poly.Points[i], poly.Points[j])
		if err != nil {
			continue
		}
		out = append(out, EdgeCrossing{Point: x, Edge: i})
	}
	return out
}

func (t Tolerance) crossing(l Line, a, b Point) (Point, error) {
	edge, err := LineThrough(a, b)
	if err != nil {
		return Point{}, err
	}
	return t.Intersect(l, edge)
}

// Split cuts poly along l.
//
// Vertices on the line go to both sides. Consecutive vertices of opposite
// strict parity get the exact crossing point inserted into both sides. A
// two-sided result needs exactly two crease points (crossings plus on-line
// vertices separating the two sides); any other count returns
// ErrAmbiguousSplit and the caller must leave the polygon whole.
func (t Tolerance) Split(poly Polygon, l Line) (SplitResult, error) {
	n := len(poly.Points)
	res := SplitResult{SegmentIdxs: [2]int{-1, -1}}
	if n == 0 {
		return res, nil
	}
	par := t.Parities(poly, l)
	sides, creases, err := t.partition(poly, l, par)
	if err != nil {
		return SplitResult{}, err
	}

	for s := range sides {
		if len(sides[s]) < 3 {
			continue
		}
		pts := make([]Point, len(sides[s]))
		pm := make([]int, len(sides[s]))
		for k, v := range sides[s] {
			pts[k] = v.p
			if v.orig >= 0 {
				pm[k] = v.orig
			} else {
				pm[k] = v.edge
			}
		}
		res.Polygons[s] = &Polygon{Points: pts}
		res.PointMappings[s] = pm
		res.EdgeMappings[s] = edgeMappings(poly, l, par, s, sides[s])
	}

	if res.Sides() < 2 {
		return res, nil
	}
	if len(creases) != 2 {
		return SplitResult{}, fmt.Errorf("%w: %d crease points", ErrAmbiguousSplit, len(creases))
	}
	for s := range res.EdgeMappings {
		idx := -1
		for k, e := range res.EdgeMappings[s] {
			if e != -1 {
				continue
			}
			if idx != -1 {
				return SplitResult{}, fmt.Errorf("%w: side %d has several crease edges", ErrAmbiguousSplit, s)
			}
			idx = k
		}
		if idx == -1 {
			return SplitResult{}, fmt.Errorf("%w: side %d has no crease edge", ErrAmbiguousSplit, s)
		}
		res.SegmentIdxs[s] = idx
	}
	crease := Segment{Start: creases[0], End: creases[1]}
	res.Crease = &crease
	return res, nil
}

// separates reports whether the on-line vertex i sits between strictly
// opposite sides, looking past neighboring on-line vertices.
func separates(par []int, i int) bool {
	n := len(par)
	before, after := 0, 0
	for k := 1; k < n && before == 0; k++ {
		before = par[(i-k+n)%n]
	}
	for k := 1; k < n && after == 0; k++ {
		after = par[(i+k)%n]
	}
	return before != 0 && after != 0 && before != after
}

// partition walks poly once and distributes its vertices, plus the
// crossing points it inserts, to side 0 and side 1. It also returns the
// crease points found on the way.
func (t Tolerance) partition(poly Polygon, l Line, par []int) ([2][]splitVertex, []Point, error) {
	n := len(poly.Points)
	var sides [2][]splitVertex
	var creases []Point
	prev := n - 1
	for i, p := range poly.Points {
		cur := par[i]
		if cur == 0 {
			v := splitVertex{p: p, orig: i, edge: -1}
			sides[0] = append(sides[0], v)
			sides[1] = append(sides[1], v)
			if separates(par, i) {
				creases = append(creases, p)
			}
			prev = i
			continue
		}
		if par[prev] != 0 && par[prev] != cur {
			x, err := t.crossing(l, poly.Points[prev], p)
			if err != nil {
				return sides, nil, fmt.Errorf("%w: edge %d: %v", ErrAmbiguousSplit, prev, err)
			}
			v := splitVertex{p: x, orig: -1, edge: prev}
			sides[0] = append(sides[0], v)
			sides[1] = append(sides[1], v)
			creases = append(creases, x)
		}
		s := 0
		if cur > 0 {
			s = 1
		}
		sides[s] = append(sides[s], splitVertex{p: p, orig: i, edge: -1})
		prev = i
	}
	return sides, creases, nil
}

// edgeMappings maps each output edge of one side to the original edge it
// lies along, or -1. An original edge lying on the line belongs only to the
// side its material is on; on the other side it maps to -1.
func edgeMappings(poly Polygon, l Line, par []int, side int, vs []splitVertex) []int {
	n := len(poly.Points)
	m := len(vs)
	out := make([]int, m)
	for k := range vs {
		a, b := vs[k], vs[(k+1)%m]
		switch {
		case a.orig >= 0 && b.orig == (a.orig+1)%n:
			out[k] = a.orig
			if par[a.orig] == 0 && par[b.orig] == 0 && materialSide(poly, l, a.orig) != side {
				out[k] = -1
			}
		case a.orig >= 0 && b.orig < 0 && b.edge == a.orig:
			out[k] = a.orig
		case a.orig < 0 && b.orig == (a.edge+1)%n:
			out[k] = a.edge
		default:
			out[k] = -1
		}
	}
	return out
}

// materialSide returns the side of l (0 negative, 1 positive) on which the
// interior of poly lies next to edge e.
func materialSide(poly Polygon, l Line, e int) int {
	edge := poly.Edge(e)
	inward := edge.End.Sub(edge.Start).Perpendicular().Neg() // left of the edge
	if poly.SignedArea() < 0 {
		inward = inward.Neg()
	}
	if inward.Dot(l.Normal) > 0 {
		return 1
	}
	return 0
}

// TestLine is DefaultTolerance.TestLine.
func TestLine(poly Polygon, l Line) int {
	return DefaultTolerance.TestLine(poly, l)
}

// IntersectPolygonLine is DefaultTolerance.IntersectPolygonLine.
func IntersectPolygonLine(poly Polygon, l Line) []EdgeCrossing {
	return DefaultTolerance.IntersectPolygonLine(poly, l)
}

// Split is DefaultTolerance.Split.
func Split(poly Polygon, l Line) (SplitResult, error) {
	return DefaultTolerance.Split(poly, l)
}

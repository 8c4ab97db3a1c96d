package paper

import (
	"slices"

	"github.com/chazu/origami/pkg/geom"
)

// link glues edge i of f to edge j of g in both directions.
func (s *Sheet) link(f *Facet, i int, g *Facet, j int) {
	f.neighbors[i] = Link{Facet: g.id, Edge: j}
	g.neighbors[j] = Link{Facet: f.id, Edge: i}
}

// retarget points the far side of f's edge i back at (f, i).
func (s *Sheet) retarget(f *Facet, i int) {
	l := f.neighbors[i]
	if l.Free() {
		return
	}
	if g, ok := s.facets[l.Facet]; ok {
		g.neighbors[l.Edge] = Link{Facet: f.id, Edge: i}
	}
}

// insertVertex inserts p at position pos of f, splitting edge pos-1. The
// new edge pos starts free; every later edge shifts up by one and the
// links pointing at those edges are renumbered. Relinking the split edge
// itself is the caller's job.
func (s *Sheet) insertVertex(f *Facet, pos int, p geom.Point) {
	f.poly = f.poly.Insert(pos, p)
	f.neighbors = slices.Insert(f.neighbors, pos, Link{})
	for k := pos + 1; k < len(f.neighbors); k++ {
		s.retarget(f, k)
	}
}

// splitEdge inserts the crossing point x on edge i of f. When the edge is
// glued, the same paper point goes into the neighbor's matching edge, placed
// in the neighbor's own folded frame, and both halves are relinked according
// to the relative winding.
func (s *Sheet) splitEdge(f *Facet, i int, x geom.Point) {
	l := f.neighbors[i]
	g, ok := s.facets[l.Facet]
	if l.Free() || !ok {
		s.insertVertex(f, i+1, x)
		return
	}
	j := l.Edge
	gn := g.poly.Len()
	start := f.unfold.Apply(f.poly.Points[i])
	same := start.Distance2(g.unfold.Apply(g.poly.Points[j])) <
		start.Distance2(g.unfold.Apply(g.poly.Points[(j+1)%gn]))

	y := g.placement.Apply(f.unfold.Apply(x))
	if y.Near(x, s.tol.Epsilon) {
		y = x
	}
	s.insertVertex(f, i+1, x)
	s.insertVertex(g, j+1, y)
	if same {
		s.link(f, i, g, j)
		s.link(f, i+1, g, j+1)
	} else {
		s.link(f, i, g, j+1)
		s.link(f, i+1, g, j)
	}
}

// presplit inserts every crossing of l with f's edges, highest edge first
// so that lower edge indices stay valid.
func (s *Sheet) presplit(f *Facet, crossings []geom.EdgeCrossing) {
	for k := len(crossings) - 1; k >= 0; k-- {
		s.splitEdge(f, crossings[k].Edge, crossings[k].Point)
	}
}

// presplitPolygon is presplit applied to a copy of the outline only.
func presplitPolygon(poly geom.Polygon, crossings []geom.EdgeCrossing) geom.Polygon {
	out := poly.Clone()
	for k := len(crossings) - 1; k >= 0; k-- {
		out = out.Insert(crossings[k].Edge+1, crossings[k].Point)
	}
	return out
}

// applySplit replaces f with the split halves, carrying each half's edges
// over from f via the edge mappings and gluing the halves across the
// crease. f is destroyed. Halves are returned by side; a side may be nil.
func (s *Sheet) applySplit(f *Facet, res geom.SplitResult) [2]*Facet {
	var halves [2]*Facet
	for side, poly := range res.Polygons {
		if poly == nil {
			continue
		}
		h := s.newFacet(*poly, f.parity, f.placement, f.unfold)
		h.layer = f.layer
		for k, e := range res.EdgeMappings[side] {
			if e >= 0 {
				h.neighbors[k] = f.neighbors[e]
			}
		}
		for k := range h.neighbors {
			s.retarget(h, k)
		}
		halves[side] = h
	}
	if halves[0] != nil && halves[1] != nil {
		s.link(halves[0], res.SegmentIdxs[0], halves[1], res.SegmentIdxs[1])
	}
	s.destroy(f)
	return halves
}

// destroy frees any link still pointing at f and removes it from the
// arena.
func (s *Sheet) destroy(f *Facet) {
	for i, l := range f.neighbors {
		if l.Free() {
			continue
		}
		g, ok := s.facets[l.Facet]
		if !ok || l.Edge >= len(g.neighbors) {
			continue
		}
		if back := g.neighbors[l.Edge]; back.Facet == f.id && back.Edge == i {
			g.neighbors[l.Edge] = Link{}
		}
	}
	delete(s.facets, f.id)
}

// reflect mirrors f across l (unit normal) with its affine form r. Vertex
// order is kept so edge indices, and therefore links, stay valid.
func (s *Sheet) reflect(f *Facet, l geom.Line, r geom.Affine) {
	f.poly = f.poly.Reflect(l)
	f.parity ^= 1
	f.placement = r.Mul(f.placement)
	f.unfold = f.unfold.Mul(r)
}

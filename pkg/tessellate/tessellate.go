// Package tessellate turns a folded sheet into triangle meshes, one per
// layer, for render consumers. Facet polygons are triangulated by ear
// clipping in folded space and lifted to z = depth.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/kernel"
	"github.com/chazu/origami/pkg/paper"
)

// ErrNotSimple is returned when a polygon has no ear to clip, which only
// happens for self-intersecting input.
var ErrNotSimple = errors.New("tessellate: polygon is not simple")

// collinearEps bounds the cross product below which a vertex is treated as
// lying on the segment joining its neighbors.
const collinearEps = 1e-12

// Tessellate produces one mesh per layer, bottom layer first. Normals point
// up (+z) for facets showing their initial face and down for flipped ones.
// The tessellator is read-only and never mutates the sheet.
func Tessellate(s *paper.Sheet) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}
	var meshes []*kernel.Mesh
	for _, layer := range s.Layers() {
		m := &kernel.Mesh{Depth: layer.Depth()}
		for _, id := range layer.Facets() {
			f, ok := s.Facet(id)
			if !ok {
				return nil, fmt.Errorf("tessellate: layer %d lists unknown facet %d", layer.Depth(), id)
			}
			if err := addFacet(m, f); err != nil {
				return nil, fmt.Errorf("tessellate: facet %d: %w", id, err)
			}
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func addFacet(m *kernel.Mesh, f *paper.Facet) error {
	poly := f.Polygon()
	tris, err := Triangulate(poly)
	if err != nil {
		return err
	}

	nz := float32(1)
	if f.Parity() == 0 {
		nz = -1
	}
	base := uint32(m.VertexCount())
	z := float32(f.Depth())
	for _, p := range poly.Points {
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), z)
		m.Normals = append(m.Normals, 0, 0, nz)
	}
	for _, t := range tris {
		a, b, c := uint32(t[0]), uint32(t[1]), uint32(t[2])
		if nz < 0 {
			b, c = c, b
		}
		m.Indices = append(m.Indices, base+a, base+b, base+c)
		m.Facets = append(m.Facets, int(f.ID()))
	}
	return nil
}

// Triangulate returns counter-clockwise triangles as indices into
// poly.Points. Collinear vertices are skipped rather than emitted as
// zero-area triangles.
func Triangulate(poly geom.Polygon) ([][3]int, error) {
	n := poly.Len()
	if n < 3 {
		return nil, fmt.Errorf("%w: %d points", ErrNotSimple, n)
	}
	pts := poly.Points

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if poly.SignedArea() < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	var out [][3]int
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			a := idx[(i+len(idx)-1)%len(idx)]
			b := idx[i]
			c := idx[(i+1)%len(idx)]
			cross := pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[b]))
			if cross <= collinearEps && cross >= -collinearEps {
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if cross > 0 && isEar(pts, idx, a, b, c) {
				out = append(out, [3]int{a, b, c})
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
		}
		if !clipped {
			return nil, ErrNotSimple
		}
	}
	a, b, c := idx[0], idx[1], idx[2]
	if pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[b])) > collinearEps {
		out = append(out, [3]int{a, b, c})
	}
	return out, nil
}

// isEar reports whether no other remaining vertex lies in triangle abc.
func isEar(pts []geom.Point, idx []int, a, b, c int) bool {
	for _, j := range idx {
		if j == a || j == b || j == c {
			continue
		}
		p := pts[j]
		if p == pts[a] || p == pts[b] || p == pts[c] {
			continue
		}
		if inTriangle(p, pts[a], pts[b], pts[c]) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c geom.Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}

// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxRegion wraps an sdf.SDF2 to implement kernel.Region.
type sdfxRegion struct {
	s sdf.SDF2
}

// BoundingBox returns the axis-aligned bounding box.
func (r *sdfxRegion) BoundingBox() (min, max [2]float64) {
	bb := r.s.BoundingBox()
	return [2]float64{bb.Min.X, bb.Min.Y}, [2]float64{bb.Max.X, bb.Max.Y}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

func unwrap(r kernel.Region) sdf.SDF2 {
	return r.(*sdfxRegion).s
}

func wrap(s sdf.SDF2) kernel.Region {
	return &sdfxRegion{s: s}
}

// Vec converts a point to the sdfx vector type.
func Vec(p geom.Point) v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// Polygon builds the region enclosed by pts.
func (k *SdfxKernel) Polygon(pts []geom.Point) (kernel.Region, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("sdfx: polygon needs at least 3 points, got %d", len(pts))
	}
	verts := make([]v2.Vec, len(pts))
	for i, p := range pts {
		verts[i] = Vec(p)
	}
	s, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return wrap(s), nil
}

// Union returns the union of two regions.
func (k *SdfxKernel) Union(a, b kernel.Region) kernel.Region {
	return wrap(sdf.Union2D(unwrap(a), unwrap(b)))
}

// Offset grows or shrinks a region by d.
func (k *SdfxKernel) Offset(r kernel.Region, d float64) kernel.Region {
	return wrap(sdf.Offset2D(unwrap(r), d))
}

// Distance evaluates the signed distance field at p.
func (k *SdfxKernel) Distance(r kernel.Region, p geom.Point) float64 {
	return unwrap(r).Evaluate(Vec(p))
}

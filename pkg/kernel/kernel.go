// Package kernel defines the planar region kernel used for hit-testing
// folded facets. Implementations (sdfx) provide signed-distance queries
// over polygons behind this interface, so callers never depend on a
// particular backend.
package kernel

import "github.com/chazu/origami/pkg/geom"

// Region is an opaque handle to a planar region.
type Region interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [2]float64)
}

// Kernel is the abstract region kernel interface.
type Kernel interface {
	// Polygon builds the region enclosed by pts, in either winding.
	Polygon(pts []geom.Point) (Region, error)

	Union(a, b Region) Region
	// Offset grows (d > 0) or shrinks (d < 0) a region.
	Offset(r Region, d float64) Region

	// Distance is the signed distance from p to the region boundary,
	// negative inside.
	Distance(r Region, p geom.Point) float64
}

// Contains reports whether p lies inside r or on its boundary.
func Contains(k Kernel, r Region, p geom.Point) bool {
	return k.Distance(r, p) <= 0
}

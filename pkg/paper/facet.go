package paper

import (
	"fmt"

	"github.com/chazu/origami/pkg/geom"
)

// FacetID identifies a facet within its sheet. Ids start at 1 and are never
// reused; the zero value means "no facet".
type FacetID int

// Link names a facet edge. The zero Link is a free boundary edge.
type Link struct {
	Facet FacetID `json:"facet"`
	Edge  int     `json:"edge"`
}

// Free reports whether the link points nowhere.
func (l Link) Free() bool {
	return l.Facet == 0
}

func (l Link) String() string {
	if l.Free() {
		return "free"
	}
	return fmt.Sprintf("%d:%d", l.Facet, l.Edge)
}

// Facet is one contiguous polygonal region of paper in a single layer.
type Facet struct {
	id        FacetID
	poly      geom.Polygon
	parity    int
	neighbors []Link
	layer     *Layer

	// placement maps paper coordinates to the folded position and unfold
	// is its inverse.
	placement geom.Affine
	unfold    geom.Affine
}

// ID returns the facet id.
func (f *Facet) ID() FacetID { return f.id }

// Polygon returns a copy of the facet outline in folded coordinates.
func (f *Facet) Polygon() geom.Polygon { return f.poly.Clone() }

// PaperPolygon returns the facet outline on the unfolded sheet.
func (f *Facet) PaperPolygon() geom.Polygon { return f.unfold.ApplyPolygon(f.poly) }

// Parity is 0 or 1 and flips each time the facet is reflected.
func (f *Facet) Parity() int { return f.parity }

// Placement maps paper coordinates to the facet's folded position.
func (f *Facet) Placement() geom.Affine { return f.placement }

// Neighbors returns a copy of the per-edge links.
func (f *Facet) Neighbors() []Link {
	out := make([]Link, len(f.neighbors))
	copy(out, f.neighbors)
	return out
}

// Neighbor returns the link on edge i.
func (f *Facet) Neighbor(i int) Link { return f.neighbors[i] }

// Layer returns the owning layer.
func (f *Facet) Layer() *Layer { return f.layer }

// Depth returns the depth of the owning layer.
func (f *Facet) Depth() int {
	if f.layer == nil {
		return -1
	}
	return f.layer.depth
}

func (f *Facet) String() string {
	return fmt.Sprintf("Facet(%d, parity %d, %d points)", f.id, f.parity, f.poly.Len())
}

// Layer is a set of non-overlapping facets at a single depth. Depth 0 is the
// bottom of the stack.
type Layer struct {
	depth  int
	facets []FacetID
}

// Depth returns the layer depth.
func (l *Layer) Depth() int { return l.depth }

// Facets returns the ids of the layer's facets in insertion order.
func (l *Layer) Facets() []FacetID {
	out := make([]FacetID, len(l.facets))
	copy(out, l.facets)
	return out
}

// Len returns the number of facets in the layer.
func (l *Layer) Len() int { return len(l.facets) }

func (l *Layer) contains(id FacetID) bool {
	for _, f := range l.facets {
		if f == id {
			return true
		}
	}
	return false
}

func (l *Layer) remove(id FacetID) {
	for i, f := range l.facets {
		if f == id {
			l.facets = append(l.facets[:i], l.facets[i+1:]...)
			return
		}
	}
}

func (l *Layer) replace(old, with FacetID) {
	for i, f := range l.facets {
		if f == old {
			l.facets[i] = with
			return
		}
	}
}

package paper

import "github.com/chazu/origami/pkg/geom"

// Snapshot is a plain description of a sheet: ordered layers of ordered
// facets, each with its vertex list and per-edge neighbor pairs.
type Snapshot struct {
	Folds  int             `json:"folds"`
	Layers []LayerSnapshot `json:"layers"`
}

// LayerSnapshot describes one layer.
type LayerSnapshot struct {
	Depth  int             `json:"depth"`
	Facets []FacetSnapshot `json:"facets"`
}

// FacetSnapshot describes one facet. Points are in folded coordinates and
// Paper holds the same outline on the unfolded sheet.
type FacetSnapshot struct {
	ID        FacetID     `json:"id"`
	Parity    int         `json:"parity"`
	Points    []PointJSON `json:"points"`
	Paper     []PointJSON `json:"paper"`
	Neighbors []*Link     `json:"neighbors"`
	Placement [6]float64  `json:"placement"`
}

// PointJSON is a point encoded as [x, y].
type PointJSON [2]float64

func pointsJSON(pts []geom.Point) []PointJSON {
	out := make([]PointJSON, len(pts))
	for i, p := range pts {
		out[i] = PointJSON{p.X, p.Y}
	}
	return out
}

// Snapshot captures the current state of the sheet. Free edges are
// encoded as null neighbors.
func (s *Sheet) Snapshot() Snapshot {
	snap := Snapshot{Folds: s.folds}
	for _, l := range s.layers {
		ls := LayerSnapshot{Depth: l.depth}
		for _, id := range l.facets {
			f := s.facets[id]
			fs := FacetSnapshot{
				ID:        f.id,
				Parity:    f.parity,
				Points:    pointsJSON(f.poly.Points),
				Paper:     pointsJSON(f.PaperPolygon().Points),
				Neighbors: make([]*Link, len(f.neighbors)),
				Placement: [6]float64{
					f.placement.A, f.placement.B, f.placement.C,
					f.placement.D, f.placement.E, f.placement.F,
				},
			}
			for i, n := range f.neighbors {
				if !n.Free() {
					n := n
					fs.Neighbors[i] = &n
				}
			}
			ls.Facets = append(ls.Facets, fs)
		}
		snap.Layers = append(snap.Layers, ls)
	}
	return snap
}

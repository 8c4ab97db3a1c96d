package paper

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/logging"
)

// ErrTooFewPoints is returned by New for an outline with fewer than three
// vertices.
var ErrTooFewPoints = errors.New("paper: polygon needs at least 3 points")

// Sheet is a stack of layers of facets. It is not safe for concurrent
// mutation.
type Sheet struct {
	tol    geom.Tolerance
	scaled bool
	log    *zap.Logger

	facets map[FacetID]*Facet
	layers []*Layer
	nextID FacetID
	folds  int

	// Derived from the facets after every fold, never authoritative.
	segments       []geom.Segment
	points         []geom.Point
	creaseSegments []geom.Segment
	creasePoints   []geom.Point
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithTolerance sets the numeric guards used for classification and
// intersection.
func WithTolerance(tol geom.Tolerance) Option {
	return func(s *Sheet) {
		s.tol = tol
		s.scaled = false
	}
}

// WithScaledTolerance derives the tolerance from the initial outline's
// bounding extent with geom.ToleranceFor.
func WithScaledTolerance() Option {
	return func(s *Sheet) {
		s.scaled = true
	}
}

// WithLogger sets the logger for fold diagnostics. The default is the
// process-wide logging.L().
func WithLogger(l *zap.Logger) Option {
	return func(s *Sheet) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a sheet holding a single facet with parity 1 at depth 0 and
// all edges free.
func New(outline geom.Polygon, opts ...Option) (*Sheet, error) {
	if outline.Len() < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, outline.Len())
	}
	s := &Sheet{
		tol:    geom.DefaultTolerance,
		log:    logging.L(),
		facets: make(map[FacetID]*Facet),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scaled {
		s.tol = geom.ToleranceFor(outline.Extent())
	}

	layer := &Layer{depth: 0}
	f := s.newFacet(outline.Clone(), 1, geom.Identity, geom.Identity)
	f.layer = layer
	layer.facets = append(layer.facets, f.id)
	s.layers = []*Layer{layer}
	s.rebuild()
	return s, nil
}

// UnitSquare is New(geom.UnitSquare(), opts...).
func UnitSquare(opts ...Option) *Sheet {
	s, err := New(geom.UnitSquare(), opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Sheet) newFacet(poly geom.Polygon, parity int, placement, unfold geom.Affine) *Facet {
	s.nextID++
	f := &Facet{
		id:        s.nextID,
		poly:      poly,
		parity:    parity,
		neighbors: make([]Link, poly.Len()),
		placement: placement,
		unfold:    unfold,
	}
	s.facets[f.id] = f
	return f
}

// Tolerance returns the numeric guards in use.
func (s *Sheet) Tolerance() geom.Tolerance { return s.tol }

// Folds returns the number of completed Fold calls.
func (s *Sheet) Folds() int { return s.folds }

// Layers returns the layers bottom to top.
func (s *Sheet) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Facet returns the facet with the given id.
func (s *Sheet) Facet(id FacetID) (*Facet, bool) {
	f, ok := s.facets[id]
	return f, ok
}

// Facets returns every facet, bottom layer first and in layer order within
// a layer.
func (s *Sheet) Facets() []*Facet {
	var out []*Facet
	for _, l := range s.layers {
		for _, id := range l.facets {
			out = append(out, s.facets[id])
		}
	}
	return out
}

// FacetCount returns the number of live facets.
func (s *Sheet) FacetCount() int { return len(s.facets) }

// Segments returns the distinct facet edges in folded coordinates. Edges
// shared by glued facets appear once regardless of direction.
func (s *Sheet) Segments() []geom.Segment { return append([]geom.Segment(nil), s.segments...) }

// Points returns the distinct facet vertices in folded coordinates, where
// stacked layers share positions: folding the unit square along x = 0.5
// leaves 4 folded points. CreasePoints reports the same vertices on the
// unfolded sheet (6 after that fold).
func (s *Sheet) Points() []geom.Point { return append([]geom.Point(nil), s.points...) }

// CreaseSegments returns the distinct facet edges on the unfolded sheet:
// the outline plus every crease made so far.
func (s *Sheet) CreaseSegments() []geom.Segment {
	return append([]geom.Segment(nil), s.creaseSegments...)
}

// CreasePoints returns the distinct facet vertices on the unfolded sheet.
func (s *Sheet) CreasePoints() []geom.Point { return append([]geom.Point(nil), s.creasePoints...) }

// Bounds returns the bounding box of the folded state.
func (s *Sheet) Bounds() (min, max geom.Point) {
	return geom.Polygon{Points: s.points}.Bounds()
}

// rebuild recomputes the derived caches from the facets.
func (s *Sheet) rebuild() {
	s.segments, s.points = nil, nil
	s.creaseSegments, s.creasePoints = nil, nil

	segs := make(map[geom.Segment]bool)
	pts := make(map[geom.Point]bool)
	csegs := make(map[geom.Segment]bool)
	cpts := make(map[geom.Point]bool)
	for _, f := range s.Facets() {
		collect(f.poly, segs, pts, &s.segments, &s.points)
		collect(f.PaperPolygon(), csegs, cpts, &s.creaseSegments, &s.creasePoints)
	}
}

func collect(poly geom.Polygon, segs map[geom.Segment]bool, pts map[geom.Point]bool,
	segOut *[]geom.Segment, ptOut *[]geom.Point) {
	for _, p := range poly.Points {
		if !pts[p] {
			pts[p] = true
			*ptOut = append(*ptOut, p)
		}
	}
	for _, e := range poly.Segments() {
		k := e.Key()
		if !segs[k] {
			segs[k] = true
			*segOut = append(*segOut, k)
		}
	}
}

// compact drops empty layers and renumbers depths 0..k.
func (s *Sheet) compact() {
	kept := s.layers[:0]
	for _, l := range s.layers {
		if len(l.facets) > 0 {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(s.layers); i++ {
		s.layers[i] = nil
	}
	s.layers = kept
	for i, l := range s.layers {
		l.depth = i
	}
}

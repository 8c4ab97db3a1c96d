package paper

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/origami/pkg/geom"
)

// FoldStats summarizes one Fold call.
type FoldStats struct {
	Split   int `json:"split"`   // facets cut in two
	Moved   int `json:"moved"`   // facets reflected onto new layers
	Skipped int `json:"skipped"` // facets left whole after an ambiguous split
	Layers  int `json:"layers"`  // layer count after the fold
}

// Fold folds the sheet along l, moving the material on the negative side of
// the line over onto the positive side.
//
// Layers are visited top down. The highest layer holding a facet that
// reaches the negative side seeds the pass. Every visited layer has all of
// its facets reaching the negative side split and moved; the pass keeps
// descending while facets below were dragged in through a neighbor link of a
// moved facet. Each visited layer's moving facets are reflected into one new
// layer on top of the stack. Empty layers are dropped and depths renumbered
// afterwards. A line that crosses no facet leaves the stack as it is.
//
// A zero-normal line returns geom.ErrDegenerateVector and leaves the sheet
// untouched. A facet whose split is ambiguous stays whole, is logged and is
// counted in FoldStats.Skipped; the rest of the pass still commits.
func (s *Sheet) Fold(l geom.Line) (FoldStats, error) {
	u, err := l.Normalize()
	if err != nil {
		return FoldStats{}, fmt.Errorf("fold along %v: %w", l, err)
	}
	r, err := geom.Reflection(u)
	if err != nil {
		return FoldStats{}, fmt.Errorf("fold along %v: %w", l, err)
	}

	p := &foldPass{
		s:         s,
		line:      u,
		refl:      r,
		processed: make(map[FacetID]bool),
		pending:   make(map[FacetID]bool),
		log:       s.log.With(zap.Int("fold", s.folds+1)),
	}
	p.run()

	s.compact()
	s.rebuild()
	s.folds++
	p.stats.Layers = len(s.layers)
	p.log.Debug("fold complete",
		zap.Int("split", p.stats.Split),
		zap.Int("moved", p.stats.Moved),
		zap.Int("skipped", p.stats.Skipped),
		zap.Int("layers", p.stats.Layers))
	return p.stats, nil
}

// foldPass holds the state of a single Fold call.
type foldPass struct {
	s    *Sheet
	line geom.Line
	refl geom.Affine
	log  *zap.Logger

	// processed marks facets already handled in this pass, including the
	// halves produced by splitting. pending holds activated facets in
	// layers not yet visited; while it is non-empty the pass descends.
	processed map[FacetID]bool
	pending   map[FacetID]bool

	top   int
	stats FoldStats
}

func (p *foldPass) run() {
	s := p.s
	if !p.crossesSheet() {
		p.log.Debug("fold line crosses no facet")
		return
	}
	original := append([]*Layer(nil), s.layers...)
	if n := len(original); n > 0 {
		p.top = original[n-1].depth
	}

	seeded := false
	for i := len(original) - 1; i >= 0; i-- {
		if seeded && len(p.pending) == 0 {
			break
		}
		layer := original[i]
		var queue []FacetID
		for _, id := range layer.facets {
			delete(p.pending, id)
			if s.tol.TestLine(s.facets[id].poly, p.line) != 1 {
				queue = append(queue, id)
			}
		}
		if len(queue) == 0 {
			continue
		}
		seeded = true

		moving := p.processLayer(layer, queue)
		if len(moving) == 0 {
			continue
		}
		p.top++
		next := &Layer{depth: p.top}
		for _, f := range moving {
			s.reflect(f, p.line, p.refl)
			f.layer = next
			next.facets = append(next.facets, f.id)
		}
		s.layers = append(s.layers, next)
		p.stats.Moved += len(moving)
	}
}

// crossesSheet reports whether some facet has vertices strictly on both
// sides of the line. A line that only touches or misses the sheet moves
// nothing.
func (p *foldPass) crossesSheet() bool {
	for _, f := range p.s.facets {
		if p.s.tol.TestLine(f.poly, p.line) == 0 {
			return true
		}
	}
	return false
}

// processLayer works through the queue of a single layer and returns the
// facets that leave it. Activated neighbors in the same layer are appended
// to the queue as they are discovered.
func (p *foldPass) processLayer(layer *Layer, queue []FacetID) []*Facet {
	p.log.Debug("fold layer", zap.Int("depth", layer.depth), zap.Int("queued", len(queue)))

	var moving []*Facet
	for k := 0; k < len(queue); k++ {
		id := queue[k]
		f, ok := p.s.facets[id]
		if !ok || p.processed[id] || f.layer != layer {
			continue
		}
		p.processed[id] = true

		m := p.processFacet(f)
		if m == nil {
			continue
		}
		moving = append(moving, m)
		queue = p.activate(m, layer, queue)
	}
	for _, m := range moving {
		layer.remove(m.id)
	}
	return moving
}

// processFacet classifies and, if needed, splits f. It returns the facet
// that must move, or nil.
func (p *foldPass) processFacet(f *Facet) *Facet {
	s := p.s
	switch s.tol.TestLine(f.poly, p.line) {
	case 1:
		return nil
	case -1:
		return f
	}

	// Classify on a copy first so an ambiguous split leaves no trace.
	crossings := s.tol.IntersectPolygonLine(f.poly, p.line)
	if _, err := s.tol.Split(presplitPolygon(f.poly, crossings), p.line); err != nil {
		if errors.Is(err, geom.ErrAmbiguousSplit) {
			p.log.Warn("facet left unsplit", zap.Int("facet", int(f.id)), zap.Error(err))
		} else {
			p.log.Warn("facet split failed", zap.Int("facet", int(f.id)), zap.Error(err))
		}
		p.stats.Skipped++
		return nil
	}

	s.presplit(f, crossings)
	res, err := s.tol.Split(f.poly, p.line)
	if err != nil {
		p.log.Warn("facet left unsplit", zap.Int("facet", int(f.id)), zap.Error(err))
		p.stats.Skipped++
		return nil
	}

	layer := f.layer
	halves := s.applySplit(f, res)
	p.stats.Split++
	for _, h := range halves {
		if h != nil {
			p.processed[h.id] = true
		}
	}

	stay, move := halves[1], halves[0]
	switch {
	case stay != nil:
		layer.replace(f.id, stay.id)
		if move != nil {
			layer.facets = append(layer.facets, move.id)
		}
	case move != nil:
		layer.replace(f.id, move.id)
	default:
		layer.remove(f.id)
	}
	return move
}

// activate marks the neighbors of the moving facet m that sit at or below
// the current layer and still reach the negative side. Same-layer
// neighbors join the current queue; deeper ones wait for their layer.
func (p *foldPass) activate(m *Facet, layer *Layer, queue []FacetID) []FacetID {
	s := p.s
	for _, l := range m.neighbors {
		if l.Free() || p.processed[l.Facet] || p.pending[l.Facet] {
			continue
		}
		g, ok := s.facets[l.Facet]
		if !ok || g.layer == nil || g.layer.depth > layer.depth {
			continue
		}
		if s.tol.TestLine(g.poly, p.line) == 1 {
			continue
		}
		if g.layer == layer {
			queue = append(queue, g.id)
			continue
		}
		p.log.Debug("facet activated", zap.Int("facet", int(g.id)), zap.Int("depth", g.layer.depth))
		p.pending[g.id] = true
	}
	return queue
}

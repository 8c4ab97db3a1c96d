// Package pick answers hit-test queries against a folded sheet: which
// facets lie under a point, top-most first.
package pick

import (
	"fmt"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/kernel"
	"github.com/chazu/origami/pkg/paper"
)

type entry struct {
	facet  *paper.Facet
	region kernel.Region
}

// Picker holds one kernel region per facet of a sheet. Build a new Picker
// after every fold; it does not observe the sheet.
type Picker struct {
	k       kernel.Kernel
	entries []entry // top-most first
	all     kernel.Region
}

// New builds regions for every facet of s. Regions are grown by the
// sheet's epsilon so that points on a facet edge hit it.
func New(s *paper.Sheet, k kernel.Kernel) (*Picker, error) {
	eps := s.Tolerance().Epsilon
	facets := s.Facets()
	p := &Picker{k: k, entries: make([]entry, 0, len(facets))}
	for i := len(facets) - 1; i >= 0; i-- {
		f := facets[i]
		r, err := k.Polygon(f.Polygon().Points)
		if err != nil {
			return nil, fmt.Errorf("pick: facet %d: %w", f.ID(), err)
		}
		r = k.Offset(r, eps)
		p.entries = append(p.entries, entry{facet: f, region: r})
		if p.all == nil {
			p.all = r
		} else {
			p.all = k.Union(p.all, r)
		}
	}
	return p, nil
}

// At returns the top-most facet containing pt.
func (p *Picker) At(pt geom.Point) (*paper.Facet, bool) {
	if !p.Covered(pt) {
		return nil, false
	}
	for _, e := range p.entries {
		if kernel.Contains(p.k, e.region, pt) {
			return e.facet, true
		}
	}
	return nil, false
}

// All returns every facet containing pt, top-most first.
func (p *Picker) All(pt geom.Point) []*paper.Facet {
	var out []*paper.Facet
	for _, e := range p.entries {
		if kernel.Contains(p.k, e.region, pt) {
			out = append(out, e.facet)
		}
	}
	return out
}

// Covered reports whether any facet lies under pt.
func (p *Picker) Covered(pt geom.Point) bool {
	return p.all != nil && kernel.Contains(p.k, p.all, pt)
}

// FacetAt is New followed by At.
func FacetAt(s *paper.Sheet, k kernel.Kernel, pt geom.Point) (*paper.Facet, bool, error) {
	p, err := New(s, k)
	if err != nil {
		return nil, false, err
	}
	f, ok := p.At(pt)
	return f, ok, nil
}

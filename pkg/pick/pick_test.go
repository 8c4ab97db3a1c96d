package pick_test

import (
	"testing"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/kernel/sdfx"
	"github.com/chazu/origami/pkg/paper"
	"github.com/chazu/origami/pkg/pick"
)

func folded(t *testing.T, lines ...geom.Line) *paper.Sheet {
	t.Helper()
	s := paper.UnitSquare()
	for _, l := range lines {
		if _, err := s.Fold(l); err != nil {
			t.Fatalf("Fold(%v): %v", l, err)
		}
	}
	return s
}

func TestFacetAtFlat(t *testing.T) {
	s := paper.UnitSquare()
	f, ok, err := pick.FacetAt(s, sdfx.New(), geom.Pt(0.3, 0.3))
	if err != nil {
		t.Fatalf("FacetAt: %v", err)
	}
	if !ok || f.ID() != s.Facets()[0].ID() {
		t.Errorf("got %v, %v; want the only facet", f, ok)
	}

	if _, ok, _ := pick.FacetAt(s, sdfx.New(), geom.Pt(2, 2)); ok {
		t.Error("hit outside the sheet")
	}
}

func TestTopMostFirst(t *testing.T) {
	s := folded(t, geom.Line{Normal: geom.Vec(1, 0), Offset: 0.5})
	p, err := pick.New(s, sdfx.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pt := geom.Pt(0.75, 0.5)
	all := p.All(pt)
	if len(all) != 2 {
		t.Fatalf("got %d facets under %v, want 2", len(all), pt)
	}
	if all[0].Depth() != 1 || all[1].Depth() != 0 {
		t.Errorf("got depths %d, %d; want 1, 0", all[0].Depth(), all[1].Depth())
	}
	top, ok := p.At(pt)
	if !ok || top.ID() != all[0].ID() {
		t.Errorf("At: got %v, want %v", top, all[0])
	}
	if top.Parity() != 0 {
		t.Errorf("top facet parity: got %d, want 0", top.Parity())
	}
}

func TestCovered(t *testing.T) {
	s := folded(t,
		geom.Line{Normal: geom.Vec(1, 0), Offset: 0.5},
		geom.Line{Normal: geom.Vec(0, 1), Offset: 0.5},
	)
	p, err := pick.New(s, sdfx.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		pt   geom.Point
		want bool
	}{
		{geom.Pt(0.75, 0.75), true},
		{geom.Pt(0.5, 0.5), true}, // corner, within epsilon
		{geom.Pt(0.25, 0.25), false},
		{geom.Pt(0.75, 0.25), false},
	}
	for _, tt := range tests {
		if got := p.Covered(tt.pt); got != tt.want {
			t.Errorf("Covered(%v): got %v, want %v", tt.pt, got, tt.want)
		}
	}
	if got := len(p.All(geom.Pt(0.75, 0.75))); got != 4 {
		t.Errorf("got %d facets in the folded stack, want 4", got)
	}
}

package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/kernel"
)

func mustPolygon(t *testing.T, k *SdfxKernel, pts ...geom.Point) kernel.Region {
	t.Helper()
	r, err := k.Polygon(pts)
	if err != nil {
		t.Fatalf("Polygon failed: %v", err)
	}
	return r
}

func TestPolygonDistance(t *testing.T) {
	k := New()
	sq := mustPolygon(t, k, geom.UnitSquare().Points...)

	tests := []struct {
		name string
		p    geom.Point
		want float64
	}{
		{"center", geom.Pt(0.5, 0.5), -0.5},
		{"near edge inside", geom.Pt(0.9, 0.5), -0.1},
		{"on edge", geom.Pt(1, 0.5), 0},
		{"outside", geom.Pt(1.25, 0.5), 0.25},
		{"diagonal corner", geom.Pt(2, 2), math.Sqrt2},
	}
	const tol = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.Distance(sq, tt.p); math.Abs(got-tt.want) > tol {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygonWinding(t *testing.T) {
	k := New()
	ccw := mustPolygon(t, k, geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1))
	cw := mustPolygon(t, k, geom.UnitSquare().Points...)
	p := geom.Pt(0.25, 0.5)
	if a, b := k.Distance(ccw, p), k.Distance(cw, p); math.Abs(a-b) > 1e-12 {
		t.Errorf("winding changed distance: %v vs %v", a, b)
	}
}

func TestPolygonTooFewPoints(t *testing.T) {
	if _, err := New().Polygon([]geom.Point{{}, {X: 1}}); err == nil {
		t.Error("expected error for 2 points")
	}
}

func TestUnion(t *testing.T) {
	k := New()
	left := mustPolygon(t, k, geom.Pt(0, 0), geom.Pt(0, 1), geom.Pt(1, 1), geom.Pt(1, 0))
	right := mustPolygon(t, k, geom.Pt(2, 0), geom.Pt(2, 1), geom.Pt(3, 1), geom.Pt(3, 0))
	u := k.Union(left, right)

	if !kernel.Contains(k, u, geom.Pt(2.5, 0.5)) || !kernel.Contains(k, u, geom.Pt(0.5, 0.5)) {
		t.Error("union should contain both squares")
	}
	if kernel.Contains(k, u, geom.Pt(1.5, 0.5)) {
		t.Error("union should not contain the gap")
	}
}

func TestOffset(t *testing.T) {
	k := New()
	sq := mustPolygon(t, k, geom.UnitSquare().Points...)
	grown := k.Offset(sq, 0.1)
	if !kernel.Contains(k, grown, geom.Pt(1.05, 0.5)) {
		t.Error("grown region should contain (1.05, 0.5)")
	}
	shrunk := k.Offset(sq, -0.1)
	if kernel.Contains(k, shrunk, geom.Pt(0.95, 0.5)) {
		t.Error("shrunk region should not contain (0.95, 0.5)")
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	tri := mustPolygon(t, k, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 3))
	min, max := tri.BoundingBox()

	const tol = 1e-9
	expectMin := [2]float64{0, 0}
	expectMax := [2]float64{2, 3}
	for i := 0; i < 2; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

package geom

import (
	"errors"
	"math"
	"testing"
)

const testEps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < testEps
}

// ---------------------------------------------------------------------------
// Vectors and points
// ---------------------------------------------------------------------------

func TestVectorOps(t *testing.T) {
	v := Vec(3, 4)
	w := Vec(1, -2)

	if got := v.Add(w); got != Vec(4, 2) {
		t.Errorf("Add: got %v, want %v", got, Vec(4, 2))
	}
	if got := v.Sub(w); got != Vec(2, 6) {
		t.Errorf("Sub: got %v, want %v", got, Vec(2, 6))
	}
	if got := v.Scale(2); got != Vec(6, 8) {
		t.Errorf("Scale: got %v, want %v", got, Vec(6, 8))
	}
	if got := v.Neg(); got != Vec(-3, -4) {
		t.Errorf("Neg: got %v, want %v", got, Vec(-3, -4))
	}
	if got := v.Dot(w); got != -5 {
		t.Errorf("Dot: got %v, want -5", got)
	}
	if got := v.Cross(w); got != -10 {
		t.Errorf("Cross: got %v, want -10", got)
	}
	if got := v.Magnitude(); got != 5 {
		t.Errorf("Magnitude: got %v, want 5", got)
	}
	if got := v.Magnitude2(); got != 25 {
		t.Errorf("Magnitude2: got %v, want 25", got)
	}
	if got := v.Perpendicular(); got != Vec(4, -3) {
		t.Errorf("Perpendicular: got %v, want %v", got, Vec(4, -3))
	}
}

func TestNormalize(t *testing.T) {
	u, err := Vec(0, 2).Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if u != Vec(0, 1) {
		t.Errorf("got %v, want %v", u, Vec(0, 1))
	}

	if _, err := Vec(0, 0).Normalize(); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("zero vector: got %v, want ErrDegenerateVector", err)
	}
}

func TestPointVectorArithmetic(t *testing.T) {
	p := Pt(1, 1)
	q := Pt(4, 5)

	if got := q.Sub(p); got != Vec(3, 4) {
		t.Errorf("point-point: got %v, want %v", got, Vec(3, 4))
	}
	if got := p.Add(Vec(3, 4)); got != q {
		t.Errorf("point+vector: got %v, want %v", got, q)
	}
	if got := q.Minus(Vec(3, 4)); got != p {
		t.Errorf("point-vector: got %v, want %v", got, p)
	}
	if got := p.Distance(q); got != 5 {
		t.Errorf("Distance: got %v, want 5", got)
	}
	if got := p.Lerp(q, 0.5); got != Pt(2.5, 3) {
		t.Errorf("Lerp: got %v, want %v", got, Pt(2.5, 3))
	}
}

// ---------------------------------------------------------------------------
// Lines and segments
// ---------------------------------------------------------------------------

func TestIntersectAxisLines(t *testing.T) {
	a := Line{Normal: Vec(1, 0), Offset: 0.5}
	b := Line{Normal: Vec(0, 1), Offset: 0.5}

	p, err := Intersect(a, b)
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}
	if p != Pt(0.5, 0.5) {
		t.Errorf("got %v, want %v", p, Pt(0.5, 0.5))
	}
}

func TestIntersectRejectsParallel(t *testing.T) {
	tests := []struct {
		name string
		a, b Line
	}{
		{"parallel", Line{Normal: Vec(1, 0), Offset: 0}, Line{Normal: Vec(1, 0), Offset: 1}},
		{"coincident", Line{Normal: Vec(0, 1), Offset: 1}, Line{Normal: Vec(0, 2), Offset: 2}},
		{"near parallel", Line{Normal: Vec(1, 0), Offset: 0}, Line{Normal: Vec(1, 1e-6), Offset: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, err := Intersect(tt.a, tt.b); !errors.Is(err, ErrNoIntersection) {
				t.Errorf("got %v, %v; want ErrNoIntersection", p, err)
			}
		})
	}
}

func TestToleranceFor(t *testing.T) {
	tol := ToleranceFor(100)
	if tol.MaxDistance != 100*DefaultMaxDistance || tol.Epsilon != 100*DefaultEpsilon {
		t.Errorf("got %+v", tol)
	}
	if got := ToleranceFor(0); got != DefaultTolerance {
		t.Errorf("zero extent: got %+v, want default", got)
	}

	// A point 0.05 off the line is on the line at scale 100.
	l := Line{Normal: Vec(1, 0), Offset: 50}
	if got := tol.Parity(Pt(50.05, 3), l); got != 0 {
		t.Errorf("scaled parity: got %d, want 0", got)
	}
	if got := Parity(Pt(50.05, 3), l); got != 1 {
		t.Errorf("default parity: got %d, want 1", got)
	}
}

func TestSegmentLine(t *testing.T) {
	l, err := Seg(Pt(0, 0), Pt(0, 2)).Line()
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	// Direction (0,1) rotated gives normal (1,0).
	if l.Normal != Vec(1, 0) || l.Offset != 0 {
		t.Errorf("got %v, want Line(Vector(1, 0), 0)", l)
	}

	_, err = Seg(Pt(1, 1), Pt(1, 1)).Line()
	if !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("degenerate segment: got %v, want ErrDegenerateVector", err)
	}
}

func TestIsPointWithinSegment(t *testing.T) {
	s := Seg(Pt(0, 0), Pt(2, 0))
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(1, 0), true},
		{Pt(0.001, 0), true},
		{Pt(0, 0), false},
		{Pt(2, 0), false},
		{Pt(3, 0), false},
		{Pt(-1, 0), false},
	}
	for _, tt := range tests {
		if got := IsPointWithinSegment(tt.p, s); got != tt.want {
			t.Errorf("IsPointWithinSegment(%v): got %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestIntersectLineSegment(t *testing.T) {
	l := Line{Normal: Vec(1, 0), Offset: 0.5}

	p, err := IntersectLineSegment(l, Seg(Pt(0, 1), Pt(1, 1)))
	if err != nil {
		t.Fatalf("crossing segment: %v", err)
	}
	if !p.Near(Pt(0.5, 1), testEps) {
		t.Errorf("got %v, want %v", p, Pt(0.5, 1))
	}

	if _, err := IntersectLineSegment(l, Seg(Pt(0.6, 0), Pt(2, 0))); !errors.Is(err, ErrNoIntersection) {
		t.Errorf("segment beside the line: got %v, want ErrNoIntersection", err)
	}
}

func TestLineConstructions(t *testing.T) {
	l := Line{Normal: Vec(0, 1), Offset: 2}
	p := Pt(3, 5)

	par := ParallelLine(l, p)
	if par.Normal != l.Normal || par.Eval(p) != 0 {
		t.Errorf("ParallelLine: got %v", par)
	}
	perp := PerpendicularLine(l, p)
	if perp.Normal.Dot(l.Normal) != 0 || perp.Eval(p) != 0 {
		t.Errorf("PerpendicularLine: got %v", perp)
	}
	if got := DistanceToLine(p, l); got != 3 {
		t.Errorf("DistanceToLine: got %v, want 3", got)
	}
}

func TestReflectPoint(t *testing.T) {
	l := Line{Normal: Vec(1, 0), Offset: 0.5}
	if got := Reflect(Pt(0, 0.3), l); !got.Near(Pt(1, 0.3), testEps) {
		t.Errorf("got %v, want %v", got, Pt(1, 0.3))
	}
}

// ---------------------------------------------------------------------------
// Polygons and transforms
// ---------------------------------------------------------------------------

func TestPolygonMeasures(t *testing.T) {
	sq := UnitSquare()
	if got := sq.Perimeter(); got != 4 {
		t.Errorf("Perimeter: got %v, want 4", got)
	}
	if got := sq.Area(); got != 1 {
		t.Errorf("Area: got %v, want 1", got)
	}
	// (0,0),(0,1),(1,1),(1,0) winds clockwise.
	if got := sq.SignedArea(); got != -1 {
		t.Errorf("SignedArea: got %v, want -1", got)
	}
	min, max := sq.Bounds()
	if min != Pt(0, 0) || max != Pt(1, 1) {
		t.Errorf("Bounds: got %v %v", min, max)
	}
	if got := sq.Edge(3); got != Seg(Pt(1, 0), Pt(0, 0)) {
		t.Errorf("Edge(3): got %v", got)
	}
}

func TestReflectRoundTrip(t *testing.T) {
	poly := Poly(Pt(0.1, 0.2), Pt(0.9, 0.1), Pt(0.7, 0.8), Pt(0.2, 0.6))
	lines := []Line{
		{Normal: Vec(1, 0), Offset: 0.5},
		{Normal: Vec(1, 1), Offset: 0.7},
		{Normal: Vec(-3, 2), Offset: 0.1},
	}
	for _, l := range lines {
		u, err := l.Normalize()
		if err != nil {
			t.Fatalf("Normalize(%v): %v", l, err)
		}
		got := poly.Reflect(u).Reflect(u)
		if !got.Near(poly, 1e-12) {
			t.Errorf("reflect twice across %v: got %v, want %v", l, got, poly)
		}
	}
}

func TestAffineReflection(t *testing.T) {
	l := Line{Normal: Vec(1, 1), Offset: 1}
	r, err := Reflection(l)
	if err != nil {
		t.Fatalf("Reflection: %v", err)
	}
	u, _ := l.Normalize()
	for _, p := range []Point{Pt(0, 0), Pt(0.3, 0.9), Pt(2, -1)} {
		if got, want := r.Apply(p), Reflect(p, u); !got.Near(want, testEps) {
			t.Errorf("Apply(%v): got %v, want %v", p, got, want)
		}
	}
	if !approx(r.Det(), -1) {
		t.Errorf("Det: got %v, want -1", r.Det())
	}

	// A reflection is its own inverse.
	inv, err := r.Inv()
	if err != nil {
		t.Fatalf("Inv: %v", err)
	}
	id := r.Mul(inv)
	for _, p := range []Point{Pt(1, 2), Pt(-0.5, 0.25)} {
		if got := id.Apply(p); !got.Near(p, testEps) {
			t.Errorf("r*inv(%v): got %v", p, got)
		}
	}

	if _, err := Reflection(Line{}); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("zero normal: got %v, want ErrDegenerateVector", err)
	}
}

func TestAffineMulOrder(t *testing.T) {
	shift := Affine{A: 1, C: 1, E: 1}
	double := Affine{A: 2, E: 2}
	// double.Mul(shift) shifts first, then doubles.
	if got := double.Mul(shift).Apply(Pt(1, 1)); got != Pt(4, 2) {
		t.Errorf("got %v, want %v", got, Pt(4, 2))
	}
	if got := Identity.Apply(Pt(3, 4)); got != Pt(3, 4) {
		t.Errorf("Identity: got %v", got)
	}
}

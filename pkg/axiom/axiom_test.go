package axiom

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/origami/pkg/geom"
)

const eps = 1e-9

// onLine reports whether p lies on l within tol, measured in units of l's
// normalized form.
func onLine(t *testing.T, p geom.Point, l geom.Line, tol float64) bool {
	t.Helper()
	u, err := l.Normalize()
	if err != nil {
		t.Fatalf("Normalize(%v): %v", l, err)
	}
	return math.Abs(u.Eval(p)) < tol
}

func reflect(t *testing.T, p geom.Point, l geom.Line) geom.Point {
	t.Helper()
	u, err := l.Normalize()
	if err != nil {
		t.Fatalf("Normalize(%v): %v", l, err)
	}
	return geom.Reflect(p, u)
}

// ---------------------------------------------------------------------------
// O1 / O2
// ---------------------------------------------------------------------------

func TestO1(t *testing.T) {
	p0, p1 := geom.Pt(0, 0), geom.Pt(1, 1)
	lines := O1(p0, p1)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !onLine(t, p0, lines[0], eps) || !onLine(t, p1, lines[0], eps) {
		t.Errorf("line %v does not pass through both points", lines[0])
	}
	if got := O1(p0, p0); len(got) != 0 {
		t.Errorf("coincident points: got %v, want none", got)
	}
}

func TestO2Bisector(t *testing.T) {
	lines := O2(geom.Pt(0, 0), geom.Pt(1, 0))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	want := geom.Line{Normal: geom.Vec(1, 0), Offset: 0.5}
	if lines[0] != want {
		t.Errorf("got %v, want %v", lines[0], want)
	}
	if got := O2(geom.Pt(0.3, 0.3), geom.Pt(0.3, 0.3)); len(got) != 0 {
		t.Errorf("coincident points: got %v, want none", got)
	}
}

// ---------------------------------------------------------------------------
// O3
// ---------------------------------------------------------------------------

func TestO3CrossingLines(t *testing.T) {
	l0 := geom.Line{Normal: geom.Vec(0, 1), Offset: 0} // y = 0
	l1 := geom.Line{Normal: geom.Vec(1, 0), Offset: 0} // x = 0

	lines := O3(l0, l1)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		// Every bisector carries l0 onto l1.
		img := reflect(t, geom.Pt(1, 0), l)
		if !onLine(t, img, l1, eps) {
			t.Errorf("bisector %v maps (1,0) to %v, not on %v", l, img, l1)
		}
	}
}

func TestO3ParallelLines(t *testing.T) {
	tests := []struct {
		name   string
		l0, l1 geom.Line
	}{
		{"same normal", geom.Line{Normal: geom.Vec(0, 1), Offset: 0}, geom.Line{Normal: geom.Vec(0, 1), Offset: 1}},
		{"opposite normal", geom.Line{Normal: geom.Vec(0, 1), Offset: 0}, geom.Line{Normal: geom.Vec(0, -1), Offset: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := O3(tt.l0, tt.l1)
			if len(lines) != 1 {
				t.Fatalf("got %v, want the midline only", lines)
			}
			if !onLine(t, geom.Pt(0.7, 0.5), lines[0], eps) {
				t.Errorf("got %v, want y = 0.5", lines[0])
			}
		})
	}
}

func TestO3Degenerate(t *testing.T) {
	if got := O3(geom.Line{}, geom.Line{Normal: geom.Vec(1, 0)}); len(got) != 0 {
		t.Errorf("zero normal: got %v, want none", got)
	}
}

// ---------------------------------------------------------------------------
// O4 / O5
// ---------------------------------------------------------------------------

func TestO4(t *testing.T) {
	p := geom.Pt(0.3, 0.4)
	l := geom.Line{Normal: geom.Vec(0, 1), Offset: 0}
	lines := O4(p, l)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !onLine(t, p, lines[0], eps) {
		t.Errorf("line %v misses %v", lines[0], p)
	}
	if dot := lines[0].Normal.Dot(l.Normal); dot != 0 {
		t.Errorf("line %v is not perpendicular to %v", lines[0], l)
	}
}

func TestO5(t *testing.T) {
	p0 := geom.Pt(0, 0)
	l := geom.Line{Normal: geom.Vec(0, 1), Offset: 0.6}

	tests := []struct {
		name string
		p1   geom.Point
		want int
	}{
		{"two solutions", geom.Pt(1, 0), 2},
		{"tangent", geom.Pt(0, -0.6), 1},
		{"too close", geom.Pt(0.1, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := O5(p0, tt.p1, l)
			if len(lines) != tt.want {
				t.Fatalf("got %d lines, want %d", len(lines), tt.want)
			}
			for _, fold := range lines {
				if !onLine(t, p0, fold, 1e-9) {
					t.Errorf("fold %v misses the pivot %v", fold, p0)
				}
				if img := reflect(t, tt.p1, fold); !onLine(t, img, l, 1e-9) {
					t.Errorf("fold %v maps %v to %v, not on %v", fold, tt.p1, img, l)
				}
			}
		})
	}
}

func TestO5Images(t *testing.T) {
	lines := O5(geom.Pt(0, 0), geom.Pt(1, 0), geom.Line{Normal: geom.Vec(0, 1), Offset: 0.6})
	wants := []geom.Point{geom.Pt(0.8, 0.6), geom.Pt(-0.8, 0.6)}
	for i, fold := range lines {
		if got := reflect(t, geom.Pt(1, 0), fold); !got.Near(wants[i], 1e-9) {
			t.Errorf("candidate %d: image %v, want %v", i, got, wants[i])
		}
	}
}

// ---------------------------------------------------------------------------
// O6 / O7
// ---------------------------------------------------------------------------

func TestO6Symmetric(t *testing.T) {
	l0 := geom.Line{Normal: geom.Vec(0, 1), Offset: 0} // y = 0
	l1 := geom.Line{Normal: geom.Vec(1, 0), Offset: 0} // x = 0

	// p0 = (0,1) onto y=0 and p1 = (1,0) onto x=0: the folds y = x and
	// y = -x.
	lines := O6(geom.Pt(0, 1), geom.Pt(1, 0), l0, l1)
	if len(lines) != 2 {
		t.Fatalf("got %v, want 2 lines", lines)
	}
	for _, want := range []geom.Point{geom.Pt(0.5, 0.5), geom.Pt(-0.5, 0.5)} {
		found := false
		for _, l := range lines {
			if onLine(t, want, l, 1e-9) && onLine(t, geom.Pt(0, 0), l, 1e-9) {
				found = true
			}
		}
		if !found {
			t.Errorf("no fold through the origin and %v in %v", want, lines)
		}
	}
}

func TestO6General(t *testing.T) {
	p0, p1 := geom.Pt(0.2, 0.3), geom.Pt(0.8, 0.5)
	l0 := geom.Line{Normal: geom.Vec(0, 1), Offset: 0}
	l1 := geom.Line{Normal: geom.Vec(1, 0), Offset: 0}

	lines := O6(p0, p1, l0, l1)
	if len(lines) == 0 {
		t.Fatal("expected at least one fold")
	}
	if len(lines) > 3 {
		t.Fatalf("got %d folds, want at most 3", len(lines))
	}
	for _, fold := range lines {
		if img := reflect(t, p0, fold); !onLine(t, img, l0, 1e-6) {
			t.Errorf("fold %v maps p0 to %v, not on l0", fold, img)
		}
		if img := reflect(t, p1, fold); !onLine(t, img, l1, 1e-6) {
			t.Errorf("fold %v maps p1 to %v, not on l1", fold, img)
		}
	}
}

func TestO7(t *testing.T) {
	p := geom.Pt(0.2, 0.3)
	l0 := geom.Line{Normal: geom.Vec(1, 0), Offset: 0} // x = 0
	l1 := geom.Line{Normal: geom.Vec(0, 1), Offset: 0} // y = 0

	lines := O7(p, l0, l1)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !onLine(t, geom.Pt(0.9, 0.15), lines[0], eps) {
		t.Errorf("got %v, want y = 0.15", lines[0])
	}
	if img := reflect(t, p, lines[0]); !onLine(t, img, l1, eps) {
		t.Errorf("fold maps p to %v, not on l1", img)
	}

	parallel := geom.Line{Normal: geom.Vec(0, 1), Offset: 1}
	if got := O7(p, l1, parallel); len(got) != 0 {
		t.Errorf("parallel lines: got %v, want none", got)
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		want       []float64
	}{
		{"three roots", 1, -6, 11, -6, []float64{1, 2, 3}},
		{"double root", 1, -1, -1, 1, []float64{-1, 1}},
		{"one real root", 1, 0, 1, -2, []float64{1}},
		{"quadratic", 0, 1, 0, -4, []float64{-2, 2}},
		{"linear", 0, 0, 2, -1, []float64{0.5}},
		{"constant", 0, 0, 0, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveCubic(tt.a, tt.b, tt.c, tt.d)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("root %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

func TestAvailable(t *testing.T) {
	pt := PointElement{Point: geom.Pt(0, 0)}
	ln := LineElement{Line: geom.Line{Normal: geom.Vec(1, 0)}}

	tests := []struct {
		name string
		sel  Selection
		want []Axiom
	}{
		{"empty", nil, nil},
		{"one point", Selection{pt}, nil},
		{"two points", Selection{pt, pt}, []Axiom{AxiomO1, AxiomO2}},
		{"two lines", Selection{ln, ln}, []Axiom{AxiomO3}},
		{"point and line", Selection{ln, pt}, []Axiom{AxiomO4}},
		{"two points and line", Selection{pt, ln, pt}, []Axiom{AxiomO5}},
		{"two points and two lines", Selection{pt, ln, pt, ln}, []Axiom{AxiomO6}},
		{"point and two lines", Selection{ln, pt, ln}, []Axiom{AxiomO7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Available(tt.sel)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	sel := Selection{
		PointElement{Point: geom.Pt(0, 0)},
		PointElement{Point: geom.Pt(1, 0)},
	}
	lines, err := Apply(AxiomO2, sel)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(lines) != 1 || lines[0] != (geom.Line{Normal: geom.Vec(1, 0), Offset: 0.5}) {
		t.Errorf("got %v, want x = 0.5", lines)
	}

	if _, err := Apply(AxiomO3, sel); !errors.Is(err, ErrSelection) {
		t.Errorf("mismatched selection: got %v, want ErrSelection", err)
	}
}

func TestAxiomNames(t *testing.T) {
	for _, a := range All {
		got, err := ParseAxiom(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAxiom(%q): got %v, %v", a.String(), got, err)
		}
	}
	if got, _ := ParseAxiom("o5"); got != AxiomO5 {
		t.Errorf("lower case: got %v, want O5", got)
	}
	if _, err := ParseAxiom("O8"); err == nil {
		t.Error("expected error for O8")
	}
}

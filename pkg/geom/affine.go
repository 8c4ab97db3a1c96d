package geom

import (
	"fmt"
	"math"
)

// Affine is a 2D affine transform in row-major form:
//
//	[ A B C ]
//	[ D E F ]
//
// where (x', y') = (A·x + B·y + C, D·x + E·y + F). Facets use it to record
// the composition of reflections that carries paper space to their folded
// position.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity is the identity transform.
var Identity = Affine{A: 1, E: 1}

// Reflection returns the transform mirroring the plane across l.
func Reflection(l Line) (Affine, error) {
	u, err := l.Normalize()
	if err != nil {
		return Affine{}, err
	}
	nx, ny := u.Normal.X, u.Normal.Y
	return Affine{
		A: 1 - 2*nx*nx, B: -2 * nx * ny, C: 2 * u.Offset * nx,
		D: -2 * nx * ny, E: 1 - 2*ny*ny, F: 2 * u.Offset * ny,
	}, nil
}

// Apply maps p through the transform.
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyPolygon maps every vertex of poly.
func (t Affine) ApplyPolygon(poly Polygon) Polygon {
	out := make([]Point, len(poly.Points))
	for i, p := range poly.Points {
		out[i] = t.Apply(p)
	}
	return Polygon{Points: out}
}

// Mul composes two transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return Affine{
		A: t.A*u.A + t.B*u.D,
		B: t.A*u.B + t.B*u.E,
		C: t.A*u.C + t.B*u.F + t.C,
		D: t.D*u.A + t.E*u.D,
		E: t.D*u.B + t.E*u.E,
		F: t.D*u.C + t.E*u.F + t.F,
	}
}

// Det returns the determinant of the linear part; -1 for an odd number of
// reflections, +1 for an even number.
func (t Affine) Det() float64 {
	return t.A*t.E - t.B*t.D
}

// Inv returns the inverse transform.
func (t Affine) Inv() (Affine, error) {
	det := t.Det()
	if math.Abs(det) < 1e-12 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant %g)", det)
	}
	return Affine{
		A: t.E / det, B: -t.B / det, C: (t.B*t.F - t.C*t.E) / det,
		D: -t.D / det, E: t.A / det, F: (t.C*t.D - t.A*t.F) / det,
	}, nil
}

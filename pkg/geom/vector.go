package geom

import (
	"fmt"
	"math"
)

// Vector is a displacement or direction in the plane.
type Vector struct {
	X, Y float64
}

// Vec is a convenience constructor for Vector.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product v·w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (the z component of v×w).
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Magnitude2 returns |v|².
func (v Vector) Magnitude2() float64 {
	return v.Dot(v)
}

// Magnitude returns |v|.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.Magnitude2())
}

// Normalize returns the unit vector along v. A zero vector yields
// ErrDegenerateVector.
func (v Vector) Normalize() (Vector, error) {
	m := v.Magnitude()
	if m == 0 {
		return Vector{}, ErrDegenerateVector
	}
	return Vector{X: v.X / m, Y: v.Y / m}, nil
}

// Perpendicular returns v rotated by -90°: (y, -x).
func (v Vector) Perpendicular() Vector {
	return Vector{X: v.Y, Y: -v.X}
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%g, %g)", v.X, v.Y)
}

// Point is a position in the plane. Points and vectors are kept apart so
// that point−point yields a vector and point+vector yields a point.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Origin is the point (0, 0).
var Origin = Point{}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Minus returns the point displaced by -v.
func (p Point) Minus(v Vector) Point {
	return Point{X: p.X - v.X, Y: p.Y - v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vector returns the position vector of p (p − Origin).
func (p Point) Vector() Vector {
	return Vector{X: p.X, Y: p.Y}
}

// Distance returns |p − q|.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Magnitude()
}

// Distance2 returns |p − q|².
func (p Point) Distance2(q Point) float64 {
	return p.Sub(q).Magnitude2()
}

// Lerp interpolates between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Scale(t))
}

// Near reports whether p and q are within eps of each other.
func (p Point) Near(q Point, eps float64) bool {
	return p.Distance2(q) <= eps*eps
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g)", p.X, p.Y)
}

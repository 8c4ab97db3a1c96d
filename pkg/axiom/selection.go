package axiom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/origami/pkg/geom"
)

// Axiom names one of the Huzita–Justin constructions.
type Axiom int

const (
	AxiomO1 Axiom = iota + 1
	AxiomO2
	AxiomO3
	AxiomO4
	AxiomO5
	AxiomO6
	AxiomO7
)

// All lists every axiom in order.
var All = []Axiom{AxiomO1, AxiomO2, AxiomO3, AxiomO4, AxiomO5, AxiomO6, AxiomO7}

// ErrSelection is returned by Apply when the selection does not hold the
// elements an axiom consumes.
var ErrSelection = errors.New("axiom: selection does not match axiom")

func (a Axiom) String() string {
	if a < AxiomO1 || a > AxiomO7 {
		return fmt.Sprintf("Axiom(%d)", int(a))
	}
	return fmt.Sprintf("O%d", int(a))
}

// Requires returns how many points and lines the axiom consumes.
func (a Axiom) Requires() (points, lines int) {
	switch a {
	case AxiomO1, AxiomO2:
		return 2, 0
	case AxiomO3:
		return 0, 2
	case AxiomO4:
		return 1, 1
	case AxiomO5:
		return 2, 1
	case AxiomO6:
		return 2, 2
	case AxiomO7:
		return 1, 2
	}
	return 0, 0
}

// Describe returns a one-line summary of the construction.
func (a Axiom) Describe() string {
	switch a {
	case AxiomO1:
		return "line through two points"
	case AxiomO2:
		return "fold one point onto another"
	case AxiomO3:
		return "fold one line onto another"
	case AxiomO4:
		return "fold through a point perpendicular to a line"
	case AxiomO5:
		return "fold through a point placing another point on a line"
	case AxiomO6:
		return "fold placing two points on two lines"
	case AxiomO7:
		return "fold perpendicular to a line placing a point on another line"
	}
	return ""
}

// ParseAxiom accepts "O1".."O7" in any case.
func ParseAxiom(s string) (Axiom, error) {
	for _, a := range All {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axiom %q", s)
}

// Element is a selected point or line.
type Element interface {
	isElement()
}

// PointElement is a selected point.
type PointElement struct {
	Point geom.Point
}

// LineElement is a selected line.
type LineElement struct {
	Line geom.Line
}

func (PointElement) isElement() {}
func (LineElement) isElement()  {}

// Selection is an ordered list of selected elements.
type Selection []Element

// Points returns the selected points in selection order.
func (s Selection) Points() []geom.Point {
	var out []geom.Point
	for _, e := range s {
		if p, ok := e.(PointElement); ok {
			out = append(out, p.Point)
		}
	}
	return out
}

// Lines returns the selected lines in selection order.
func (s Selection) Lines() []geom.Line {
	var out []geom.Line
	for _, e := range s {
		if l, ok := e.(LineElement); ok {
			out = append(out, l.Line)
		}
	}
	return out
}

// Counts returns the number of selected points and lines.
func (s Selection) Counts() (points, lines int) {
	for _, e := range s {
		switch e.(type) {
		case PointElement:
			points++
		case LineElement:
			lines++
		}
	}
	return points, lines
}

// Available returns the axioms whose inputs exactly match the selection.
func Available(sel Selection) []Axiom {
	np, nl := sel.Counts()
	var out []Axiom
	for _, a := range All {
		if p, l := a.Requires(); p == np && l == nl {
			out = append(out, a)
		}
	}
	return out
}

// Apply evaluates a with the default Constructor.
func Apply(a Axiom, sel Selection) ([]geom.Line, error) {
	return std.Apply(a, sel)
}

// Apply evaluates a over the selection, consuming points and lines in
// selection order.
func (c Constructor) Apply(a Axiom, sel Selection) ([]geom.Line, error) {
	np, nl := sel.Counts()
	if p, l := a.Requires(); p != np || l != nl || p+l == 0 {
		return nil, fmt.Errorf("%w: %v needs %d points and %d lines, have %d and %d",
			ErrSelection, a, p, l, np, nl)
	}
	pts, lines := sel.Points(), sel.Lines()
	switch a {
	case AxiomO1:
		return c.O1(pts[0], pts[1]), nil
	case AxiomO2:
		return c.O2(pts[0], pts[1]), nil
	case AxiomO3:
		return c.O3(lines[0], lines[1]), nil
	case AxiomO4:
		return c.O4(pts[0], lines[0]), nil
	case AxiomO5:
		return c.O5(pts[0], pts[1], lines[0]), nil
	case AxiomO6:
		return c.O6(pts[0], pts[1], lines[0], lines[1]), nil
	default:
		return c.O7(pts[0], lines[0], lines[1]), nil
	}
}

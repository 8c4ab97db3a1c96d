package geom

import "errors"

var (
	// ErrDegenerateVector is returned when a zero-length vector would have
	// to be normalized, e.g. the direction of a segment whose ends coincide.
	ErrDegenerateVector = errors.New("geom: degenerate vector")

	// ErrNoIntersection is returned for parallel or near-parallel lines and
	// for solutions rejected by the MaxDistance guard.
	ErrNoIntersection = errors.New("geom: no intersection")

	// ErrAmbiguousSplit is returned when a polygon/line split does not yield
	// exactly two crease points.
	ErrAmbiguousSplit = errors.New("geom: ambiguous split")
)

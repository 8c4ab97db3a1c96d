// Package geom provides the planar geometry used by the folding engine:
// points and vectors as distinct types, lines in normal/offset form,
// directed segments, implicitly closed polygons, reflections and the
// polygon splitter that cuts a facet along a fold line.
//
// Paper lives in the unit square by convention. The numeric guards
// (MaxDistance for near-parallel intersections, Epsilon for on-line
// classification) are grouped in Tolerance so callers working at another
// scale can derive them from the sheet extent with ToleranceFor.
package geom

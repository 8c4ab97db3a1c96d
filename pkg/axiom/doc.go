// Package axiom constructs candidate fold lines from selected points and
// lines using the Huzita–Justin axioms O1 through O7.
//
// Every constructor returns zero or more candidates and never an error.
// Degenerate input (coincident points, parallel lines where an
// intersection is needed) yields an empty slice, and callers should simply
// not offer that fold.
package axiom

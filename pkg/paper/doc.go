// Package paper models a folded sheet as a stack of layers of polygonal
// facets and implements the fold state machine.
//
// Facets live in an arena owned by the Sheet and are addressed by FacetID.
// Each facet edge carries a Link to the facet edge glued to it, forming a
// neighbor graph that survives splitting, reflection and re-stacking.
// Links are weak: destroying a facet frees every link that pointed at it.
//
// A fold reflects the material on the negative side of the line (the side
// p0 lies on for axiom.O2(p0, p1)) onto the positive side, stacking the
// moved facets on top in new layers.
package paper

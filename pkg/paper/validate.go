package paper

import (
	"fmt"
	"sort"

	"github.com/chazu/origami/pkg/geom"
)

// ValidationSeverity indicates whether a finding means the sheet is corrupt
// or is merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // broken invariant
	SeverityWarning                           // advisory
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Facet    FacetID            // offending facet (zero if sheet-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Facet == 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] facet %d: %s", e.Severity, e.Facet, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Facet   FacetID
	Message string
}

// ValidationResult bundles structural errors and geometric warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no errors were found.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the structural checks on the sheet and returns every
// violation found. An empty slice means the layer stack and neighbor graph
// are consistent. It never mutates the sheet.
func Validate(s *Sheet) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateLayers(s)...)
	errs = append(errs, validateArena(s)...)
	errs = append(errs, validateNeighbors(s)...)
	errs = append(errs, validateFacets(s)...)
	return errs
}

// ValidateAll runs Validate plus the geometric checks and separates errors
// from warnings.
func ValidateAll(s *Sheet) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(s) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{Facet: e.Facet, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Warnings = append(result.Warnings, validateGeometry(s)...)
	return result
}

// validateLayers checks that depths run 0..k in stack order and that every
// listed facet exists and points back at its layer.
func validateLayers(s *Sheet) []ValidationError {
	var errs []ValidationError
	if len(s.layers) == 0 {
		errs = append(errs, ValidationError{Message: "sheet has no layers", Severity: SeverityError})
	}

	seen := make(map[FacetID]int)
	for i, l := range s.layers {
		if l.depth != i {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("layer %d has depth %d", i, l.depth),
				Severity: SeverityError,
			})
		}
		if len(l.facets) == 0 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("layer %d is empty", i),
				Severity: SeverityError,
			})
		}
		for _, id := range l.facets {
			if prev, dup := seen[id]; dup {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("listed in layers %d and %d", prev, i),
					Severity: SeverityError,
				})
				continue
			}
			seen[id] = i
			f, ok := s.facets[id]
			if !ok {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("layer %d lists a facet that does not exist", i),
					Severity: SeverityError,
				})
				continue
			}
			if f.layer != l {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("listed in layer %d but owned by depth %d", i, f.Depth()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateArena checks that every live facet is stacked somewhere.
func validateArena(s *Sheet) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(s) {
		f := s.facets[id]
		if f.layer == nil || !f.layer.contains(id) {
			errs = append(errs, ValidationError{
				Facet:    id,
				Message:  "not listed in any layer",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateNeighbors checks link arity, dangling links and symmetry.
func validateNeighbors(s *Sheet) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(s) {
		f := s.facets[id]
		if len(f.neighbors) != f.poly.Len() {
			errs = append(errs, ValidationError{
				Facet:    id,
				Message:  fmt.Sprintf("%d neighbor slots for %d edges", len(f.neighbors), f.poly.Len()),
				Severity: SeverityError,
			})
			continue
		}
		for i, l := range f.neighbors {
			if l.Free() {
				continue
			}
			g, ok := s.facets[l.Facet]
			if !ok {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("edge %d links to missing facet %d", i, l.Facet),
					Severity: SeverityError,
				})
				continue
			}
			if l.Facet == id {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("edge %d links to itself", i),
					Severity: SeverityError,
				})
				continue
			}
			if l.Edge < 0 || l.Edge >= len(g.neighbors) {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("edge %d links to edge %d of facet %d, which has %d edges", i, l.Edge, l.Facet, len(g.neighbors)),
					Severity: SeverityError,
				})
				continue
			}
			if back := g.neighbors[l.Edge]; back != (Link{Facet: id, Edge: i}) {
				errs = append(errs, ValidationError{
					Facet:    id,
					Message:  fmt.Sprintf("edge %d links to %v but %v links back to %v", i, l, l, back),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateFacets checks polygon size and parity range.
func validateFacets(s *Sheet) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(s) {
		f := s.facets[id]
		if f.poly.Len() < 3 {
			errs = append(errs, ValidationError{
				Facet:    id,
				Message:  fmt.Sprintf("polygon has %d points", f.poly.Len()),
				Severity: SeverityError,
			})
		}
		if f.parity != 0 && f.parity != 1 {
			errs = append(errs, ValidationError{
				Facet:    id,
				Message:  fmt.Sprintf("parity %d is not 0 or 1", f.parity),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateGeometry warns about glued edges that do not coincide, on the
// unfolded sheet or in the folded state, and about sliver facets.
func validateGeometry(s *Sheet) []ValidationWarning {
	var warns []ValidationWarning
	eps := s.tol.Epsilon
	for _, id := range sortedIDs(s) {
		f := s.facets[id]
		paper := f.PaperPolygon()
		if paper.Area() < eps*eps {
			warns = append(warns, ValidationWarning{
				Facet:   id,
				Message: fmt.Sprintf("area %g is below tolerance", paper.Area()),
			})
		}
		if len(f.neighbors) != paper.Len() {
			continue
		}
		for i, l := range f.neighbors {
			g, ok := s.facets[l.Facet]
			if l.Free() || !ok || l.Edge >= g.poly.Len() || l.Facet < id {
				continue
			}
			if !coincide(paper.Edge(i), g.PaperPolygon().Edge(l.Edge), eps) {
				warns = append(warns, ValidationWarning{
					Facet:   id,
					Message: fmt.Sprintf("edge %d and its neighbor %v do not coincide", i, l),
				})
				continue
			}
			// Reflection moves a vertex within eps of the fold line by up
			// to 2*eps, so glued edges may drift that far apart.
			if !coincide(f.poly.Edge(i), g.poly.Edge(l.Edge), 3*eps) {
				warns = append(warns, ValidationWarning{
					Facet:   id,
					Message: fmt.Sprintf("edge %d and its neighbor %v are torn apart in the folded state", i, l),
				})
			}
		}
	}
	return warns
}

// coincide reports whether a and b are the same segment in either
// direction.
func coincide(a, b geom.Segment, eps float64) bool {
	same := a.Start.Near(b.Start, eps) && a.End.Near(b.End, eps)
	opposite := a.Start.Near(b.End, eps) && a.End.Near(b.Start, eps)
	return same || opposite
}

func sortedIDs(s *Sheet) []FacetID {
	ids := make([]FacetID, 0, len(s.facets))
	for id := range s.facets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

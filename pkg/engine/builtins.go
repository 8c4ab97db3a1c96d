package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/origami/pkg/axiom"
	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/paper"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites fold-script source into something zygomys reads:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables.
//  2. Hyphens between identifier characters become underscores
//     (unit-square -> unit_square); zygomys reads a bare hyphen as minus.
//  3. ; line comments become // comments.
//
// String literals ("..." and `...`) pass through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"' || c == '`':
			i = copyQuoted(&out, b, i)
		case c == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}
		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.Write(b[i+1 : j])
			out.WriteByte('"')
			i = j
		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// copyQuoted copies the literal opening at b[i] and returns the index just
// past its closing quote. Backslash escapes only apply inside "...".
func copyQuoted(out *strings.Builder, b []byte, i int) int {
	q := b[i]
	out.WriteByte(q)
	i++
	for i < len(b) && b[i] != q {
		if q == '"' && b[i] == '\\' && i+1 < len(b) {
			out.Write(b[i : i+2])
			i += 2
			continue
		}
		out.WriteByte(b[i])
		i++
	}
	if i < len(b) {
		out.WriteByte(b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpPoint struct {
	p geom.Point
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g)", s.p.X, s.p.Y)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

type sexpLine struct {
	l geom.Line
}

func (s *sexpLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(line %g %g %g)", s.l.Normal.X, s.l.Normal.Y, s.l.Offset)
}
func (s *sexpLine) Type() *zygo.RegisteredType { return nil }

// sexpSheet is returned by sheet and unit-square.
type sexpSheet struct {
	s *paper.Sheet
}

func (s *sexpSheet) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(sheet :layers %d :facets %d)", len(s.s.Layers()), s.s.FacetCount())
}
func (s *sexpSheet) Type() *zygo.RegisteredType { return nil }

// sexpFold is returned by fold.
type sexpFold struct {
	stats paper.FoldStats
}

func (s *sexpFold) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(fold :split %d :moved %d :skipped %d :layers %d)",
		s.stats.Split, s.stats.Moved, s.stats.Skipped, s.stats.Layers)
}
func (s *sexpFold) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		switch {
		case !ok:
			result.positional = append(result.positional, args[i])
		case i+1 < len(args):
			result.kw[name] = args[i+1]
			i++
		default:
			// Trailing keyword with no value acts as a flag.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (geom.Point, error) {
	if v, ok := s.(*sexpPoint); ok {
		return v.p, nil
	}
	return geom.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

func toLine(s zygo.Sexp) (geom.Line, error) {
	if v, ok := s.(*sexpLine); ok {
		return v.l, nil
	}
	return geom.Line{}, fmt.Errorf("expected line, got %T (%s)", s, s.SexpString(nil))
}

// toLines accepts a single line or a list of candidate lines.
func toLines(s zygo.Sexp) ([]geom.Line, error) {
	if v, ok := s.(*sexpLine); ok {
		return []geom.Line{v.l}, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected line or candidate list: %w", err)
	}
	out := make([]geom.Line, 0, len(items))
	for i, item := range items {
		l, err := toLine(item)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// toElement converts a point or line into an axiom selection element.
func toElement(s zygo.Sexp) (axiom.Element, error) {
	switch v := s.(type) {
	case *sexpPoint:
		return axiom.PointElement{Point: v.p}, nil
	case *sexpLine:
		return axiom.LineElement{Line: v.l}, nil
	}
	return nil, fmt.Errorf("expected point or line, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func linesToSexp(env *zygo.Zlisp, lines []geom.Line) zygo.Sexp {
	vals := make([]zygo.Sexp, len(lines))
	for i, l := range lines {
		vals[i] = &sexpLine{l: l}
	}
	return &zygo.SexpArray{Val: vals, Env: env}
}

// pickLine selects candidate i, reporting an empty or short list.
func pickLine(lines []geom.Line, i int) (geom.Line, error) {
	if len(lines) == 0 {
		return geom.Line{}, fmt.Errorf("no candidate lines")
	}
	if i < 0 || i >= len(lines) {
		return geom.Line{}, fmt.Errorf("index %d out of range [0, %d)", i, len(lines))
	}
	return lines[i], nil
}

// ---------------------------------------------------------------------------
// Evaluation state
// ---------------------------------------------------------------------------

// evalState is the sheet and fold history one script builds up.
type evalState struct {
	sheet    *paper.Sheet
	axioms   axiom.Constructor
	opts     []paper.Option
	folds    []paper.FoldStats
	warnings []EvalWarning
}

// ensureSheet returns the current sheet, creating the unit square on first
// use.
func (st *evalState) ensureSheet() *paper.Sheet {
	if st.sheet == nil {
		st.sheet = paper.UnitSquare(st.opts...)
	}
	return st.sheet
}

// constructor follows the sheet's tolerance once one exists.
func (st *evalState) constructor() axiom.Constructor {
	if st.sheet != nil {
		return axiom.Constructor{Tol: st.sheet.Tolerance()}
	}
	return st.axioms
}

func (st *evalState) result() EvalResult {
	return EvalResult{
		Sheet:    st.ensureSheet(),
		Warnings: st.warnings,
		Folds:    st.folds,
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the fold-script builtins. Source must be run
// through preprocessSource first so keywords and kebab-case names resolve.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {

	// (pt 0.5 1)
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{p: geom.Pt(x, y)}, nil
	})

	// (line 1 0 0.5) is the line x = 0.5.
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("line requires normal x, normal y and offset, got %d arguments", len(args))
		}
		var v [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: argument %d: %w", i+1, err)
			}
			v[i] = f
		}
		l := geom.Line{Normal: geom.Vec(v[0], v[1]), Offset: v[2]}
		if l.Normal.Magnitude2() == 0 {
			return zygo.SexpNull, fmt.Errorf("line: %w", geom.ErrDegenerateVector)
		}
		return &sexpLine{l: l}, nil
	})

	// (sheet (pt 0 0) (pt 0 2) (pt 1 2) (pt 1 0))
	env.AddFunction("sheet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if st.sheet != nil {
			return zygo.SexpNull, fmt.Errorf("sheet: a sheet already exists")
		}
		pts := make([]geom.Point, 0, len(args))
		for i, a := range args {
			p, err := toPoint(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sheet: vertex %d: %w", i, err)
			}
			pts = append(pts, p)
		}
		s, err := paper.New(geom.Poly(pts...), st.opts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sheet: %w", err)
		}
		st.sheet = s
		return &sexpSheet{s: s}, nil
	})

	// (unit-square)
	env.AddFunction("unit_square", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if st.sheet != nil {
			return zygo.SexpNull, fmt.Errorf("unit-square: a sheet already exists")
		}
		return &sexpSheet{s: st.ensureSheet()}, nil
	})

	// (o1 p q) .. (o7 p l m): candidate lists, in argument order.
	for _, a := range axiom.All {
		a := a
		fn := strings.ToLower(a.String())
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			sel := make(axiom.Selection, 0, len(args))
			for i, arg := range args {
				el, err := toElement(arg)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
				}
				sel = append(sel, el)
			}
			lines, err := st.constructor().Apply(a, sel)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			return linesToSexp(env, lines), nil
		})
	}

	// (pick (o5 p q l) 1)
	env.AddFunction("pick", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pick requires a candidate list and an index")
		}
		lines, err := toLines(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pick: %w", err)
		}
		i, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pick: index: %w", err)
		}
		l, err := pickLine(lines, i)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pick: %w", err)
		}
		return &sexpLine{l: l}, nil
	})

	// (fold (o2 a b)) or (fold (o3 l m) :pick 1) or (fold (line 1 0 0.5))
	env.AddFunction("fold", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("fold requires one line or candidate list")
		}
		lines, err := toLines(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fold: %w", err)
		}
		idx := 0
		if v, ok := pa.kw["pick"]; ok {
			if idx, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("fold: pick: %w", err)
			}
		}
		l, err := pickLine(lines, idx)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fold: %w", err)
		}

		stats, err := st.ensureSheet().Fold(l)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fold: %w", err)
		}
		st.folds = append(st.folds, stats)
		if stats.Skipped > 0 {
			st.warnings = append(st.warnings, EvalWarning{
				Fold:    len(st.folds),
				Message: fmt.Sprintf("fold along %v left %d facet(s) unsplit", l, stats.Skipped),
			})
		}
		return &sexpFold{stats: stats}, nil
	})

	// (reflect p l)
	env.AddFunction("reflect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("reflect requires a point and a line")
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: %w", err)
		}
		l, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: %w", err)
		}
		u, err := l.Normalize()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reflect: %w", err)
		}
		return &sexpPoint{p: geom.Reflect(p, u)}, nil
	})

	// (intersect l m)
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires two lines")
		}
		a, err := toLine(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		b, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		p, err := st.constructor().Tol.Intersect(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		return &sexpPoint{p: p}, nil
	})

	// (layers) and (facets) count the current sheet.
	env.AddFunction("layers", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(len(st.ensureSheet().Layers()))}, nil
	})
	env.AddFunction("facets", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(st.ensureSheet().FacetCount())}, nil
	})
}

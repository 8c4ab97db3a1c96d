// Package engine evaluates fold scripts. A script is zygomys Lisp with a
// small set of builtins for points, lines, axiom constructions and folds;
// evaluating it produces a folded paper.Sheet.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/origami/pkg/axiom"
	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/paper"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning reports a fold that committed with facets left unsplit.
type EvalWarning struct {
	Fold    int // 1-based index of the fold in the script
	Message string
}

// EvalResult bundles the full output of an evaluation.
type EvalResult struct {
	Sheet    *paper.Sheet
	Errors   []EvalError
	Warnings []EvalWarning
	Folds    []paper.FoldStats
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use; each
// evaluation runs in a fresh sandbox and builds its own sheet.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	timeout   time.Duration
	tol       geom.Tolerance
	sheetOpts []paper.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each evaluation. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithTolerance sets the guards used by axiom builtins and by every sheet
// the script creates.
func WithTolerance(tol geom.Tolerance) Option {
	return func(e *Engine) {
		e.tol = tol
		e.sheetOpts = append(e.sheetOpts, paper.WithTolerance(tol))
	}
}

// WithSheetOptions passes extra options to every sheet the script creates.
func WithSheetOptions(opts ...paper.Option) Option {
	return func(e *Engine) {
		e.sheetOpts = append(e.sheetOpts, opts...)
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout, tol: geom.DefaultTolerance}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs source and returns the resulting sheet.
//
// Return semantics:
//   - On success: returns sheet + nil errors + nil error
//   - On parse/eval failure: returns nil sheet + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
//
// A script that never creates a sheet operates on the unit square.
func (e *Engine) Evaluate(source string) (*paper.Sheet, []EvalError, error) {
	res, err := e.Run(source)
	if err != nil {
		return nil, nil, err
	}
	return res.Sheet, res.Errors, nil
}

// Run is Evaluate with fold statistics and warnings.
func (e *Engine) Run(source string) (EvalResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, err := e.evaluate(source)
		ch <- evalResult{res: res, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
}

func (e *Engine) evaluate(source string) (EvalResult, error) {
	st := &evalState{
		axioms: axiom.Constructor{Tol: e.tol},
		opts:   e.sheetOpts,
	}

	if strings.TrimSpace(source) == "" {
		return st.result(), nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}
	if _, err := env.Run(); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}
	return st.result(), nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

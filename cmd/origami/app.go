package main

import (
	"go.uber.org/zap"

	"github.com/chazu/origami/pkg/config"
	"github.com/chazu/origami/pkg/engine"
	"github.com/chazu/origami/pkg/kernel"
	"github.com/chazu/origami/pkg/kernel/sdfx"
	"github.com/chazu/origami/pkg/logging"
	"github.com/chazu/origami/pkg/paper"
	"github.com/chazu/origami/pkg/tessellate"
)

// colorPalette assigns a distinct color to each layer mesh.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App wires the script engine, the region kernel and the tessellator
// behind one Evaluate call.
type App struct {
	cfg    *config.Config
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON form of one layer mesh.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Facets   []int     `json:"facets"`
	Depth    int       `json:"depth"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the full output of one evaluation.
type Result struct {
	Snapshot *paper.Snapshot   `json:"snapshot,omitempty"`
	Folds    []paper.FoldStats `json:"folds"`
	Meshes   []MeshData        `json:"meshes,omitempty"`
	Errors   []EvalErrorData   `json:"errors"`
	Warnings []EvalErrorData   `json:"warnings"`

	Sheet *paper.Sheet `json:"-"`
}

// OK reports whether the script ran without errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// NewApp creates an App from cfg.
func NewApp(cfg *config.Config) *App {
	opts := []engine.Option{engine.WithTimeout(cfg.Timeout())}
	if cfg.Tolerance.Scaled {
		opts = append(opts, engine.WithSheetOptions(paper.WithScaledTolerance()))
	} else {
		opts = append(opts, engine.WithTolerance(cfg.GeomTolerance()))
	}
	return &App{
		cfg:    cfg,
		engine: engine.NewEngine(opts...),
		kernel: sdfx.New(),
	}
}

// Evaluate runs a fold script. With meshes set, every layer is
// tessellated into the result.
func (a *App) Evaluate(source string, meshes bool) Result {
	result := Result{
		Folds:    []paper.FoldStats{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
	log := logging.L()

	res, err := a.engine.Run(source)
	if err != nil {
		log.Error("evaluation failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}
	result.Folds = append(result.Folds, res.Folds...)
	result.Sheet = res.Sheet
	snap := res.Sheet.Snapshot()
	result.Snapshot = &snap
	log.Debug("script evaluated",
		zap.Int("folds", len(res.Folds)),
		zap.Int("layers", len(res.Sheet.Layers())),
		zap.Int("facets", res.Sheet.FacetCount()))

	if !meshes {
		return result
	}
	ms, err := tessellate.Tessellate(res.Sheet)
	if err != nil {
		log.Error("tessellation failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	for i, m := range ms {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Facets:   m.Facets,
			Depth:    m.Depth,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

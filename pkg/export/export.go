// Package export writes a sheet's line work to DXF or SVG through the sdfx
// renderers. Either the folded state or the unfolded crease pattern can be
// drawn.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"go.uber.org/zap"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/logging"
	"github.com/chazu/origami/pkg/paper"
)

// ErrUnknownFormat is returned for output paths that are neither .dxf nor .svg.
var ErrUnknownFormat = errors.New("export: unknown format")

// View selects which line set is drawn.
type View int

const (
	// ViewFolded draws facet edges where they lie after folding.
	ViewFolded View = iota
	// ViewCreasePattern draws the unfolded sheet with every crease.
	ViewCreasePattern
)

func (v View) String() string {
	if v == ViewCreasePattern {
		return "crease"
	}
	return "folded"
}

// ParseView accepts "folded" or "crease".
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "folded", "":
		return ViewFolded, nil
	case "crease", "crease-pattern", "cp":
		return ViewCreasePattern, nil
	}
	return 0, fmt.Errorf("unknown view %q, expected folded or crease", s)
}

// Writer is a line sink with a final flush. render.SVG satisfies it
// directly; render.DXF goes through dxfWriter.
type Writer interface {
	Line(p0, p1 v2.Vec)
	Save() error
}

// dxfWriter adapts render.DXF, whose Line takes an sdf.Line2.
type dxfWriter struct {
	d *render.DXF
}

func (w dxfWriter) Line(p0, p1 v2.Vec) { w.d.Line(&sdf.Line2{p0, p1}) }

func (w dxfWriter) Save() error { return w.d.Save() }

var (
	_ Writer = dxfWriter{}
	_ Writer = (*render.SVG)(nil)
)

// Options controls a drawing.
type Options struct {
	View      View
	Scale     float64 // sheet units to drawing units; 0 means 1
	LineStyle string  // SVG stroke style
}

// Segments returns the line set for v.
func Segments(s *paper.Sheet, v View) []geom.Segment {
	if v == ViewCreasePattern {
		return s.CreaseSegments()
	}
	return s.Segments()
}

// Draw writes segs to w and saves it.
func Draw(w Writer, segs []geom.Segment, scale float64) error {
	if len(segs) == 0 {
		return errors.New("export: nothing to draw")
	}
	if scale == 0 {
		scale = 1
	}
	for _, sg := range segs {
		w.Line(v2.Vec{X: sg.Start.X * scale, Y: sg.Start.Y * scale},
			v2.Vec{X: sg.End.X * scale, Y: sg.End.Y * scale})
	}
	return w.Save()
}

// DXF writes the sheet to a DXF file at path.
func DXF(s *paper.Sheet, path string, opts Options) error {
	return write(dxfWriter{d: render.NewDXF(path)}, s, path, opts)
}

// SVG writes the sheet to an SVG file at path.
func SVG(s *paper.Sheet, path string, opts Options) error {
	return write(render.NewSVG(path, opts.LineStyle), s, path, opts)
}

// File picks DXF or SVG from the path's extension.
func File(s *paper.Sheet, path string, opts Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		return DXF(s, path, opts)
	case ".svg":
		return SVG(s, path, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

func write(w Writer, s *paper.Sheet, path string, opts Options) error {
	segs := Segments(s, opts.View)
	if err := Draw(w, segs, opts.Scale); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	logging.L().Debug("exported sheet",
		zap.String("path", path),
		zap.Stringer("view", opts.View),
		zap.Int("segments", len(segs)))
	return nil
}

// Package main implements the origami CLI: run fold scripts, validate the
// folded sheet, query facets and list the fold axioms.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/origami/pkg/axiom"
	"github.com/chazu/origami/pkg/config"
	"github.com/chazu/origami/pkg/export"
	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/kernel/sdfx"
	"github.com/chazu/origami/pkg/logging"
	"github.com/chazu/origami/pkg/paper"
	"github.com/chazu/origami/pkg/pick"
)

// version information
var version = "dev"

// errScript is returned after script errors have been printed.
var errScript = errors.New("script failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errScript) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// rootOptions holds persistent flags and the configuration they resolve to.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "origami",
		Short: "Multi-layer paper folding engine",
		Long: `origami evaluates fold scripts against a layered model of a paper sheet.

A fold script is Lisp: (pt x y) and (line nx ny offset) build inputs,
(o1 ..) through (o7 ..) return candidate fold lines for the Huzita-Justin
axioms, and (fold line-or-candidates :pick i) folds the sheet.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newPickCmd(opts))
	root.AddCommand(newAxiomsCmd())
	return root
}

// setup loads the configuration, applies flag overrides and installs the
// process logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.NewWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.Set(logger)
	o.cfg = cfg
	return nil
}

// readScript reads path, or stdin for "-".
func readScript(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(b), nil
}

// evaluate runs the script at path and prints its errors and warnings to
// stderr. It returns errScript if the script failed.
func (o *rootOptions) evaluate(cmd *cobra.Command, path string, meshes bool) (Result, error) {
	source, err := readScript(cmd, path)
	if err != nil {
		return Result{}, err
	}
	res := NewApp(o.cfg).Evaluate(source, meshes)
	stderr := cmd.ErrOrStderr()
	for _, e := range res.Errors {
		if e.Line > 0 {
			fmt.Fprintf(stderr, "%s:%d: %s\n", path, e.Line, e.Message)
		} else {
			fmt.Fprintf(stderr, "%s: %s\n", path, e.Message)
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "%s: warning: %s\n", path, w.Message)
	}
	if !res.OK() {
		return res, errScript
	}
	return res, nil
}

// ---------------------------------------------------------------------------
// run
// ---------------------------------------------------------------------------

type runOptions struct {
	asJSON bool
	meshes bool
	out    []string
	view   string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Evaluate a fold script",
		Long: `Evaluate a fold script and report the folded sheet.

Examples:
  # Summarize the result
  origami run examples/quarters.fold

  # Full snapshot with layer meshes as JSON
  origami run --json --meshes examples/quarters.fold

  # Write the crease pattern
  origami run --view crease --out cp.svg examples/diagonal.fold`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.meshes, "meshes", false, "include per-layer triangle meshes in JSON output")
	cmd.Flags().StringArrayVarP(&opts.out, "out", "o", nil, "write a .dxf or .svg drawing (repeatable)")
	cmd.Flags().StringVar(&opts.view, "view", "folded", "drawing view: folded or crease")
	return cmd
}

func runRun(cmd *cobra.Command, root *rootOptions, opts *runOptions, path string) error {
	view, err := export.ParseView(opts.view)
	if err != nil {
		return err
	}
	res, err := root.evaluate(cmd, path, opts.meshes)
	if err != nil {
		return err
	}

	for _, out := range opts.out {
		eo := export.Options{View: view, Scale: root.cfg.Export.Scale, LineStyle: root.cfg.Export.LineStyle}
		if err := export.File(res.Sheet, out, eo); err != nil {
			return err
		}
		logging.L().Info("wrote drawing", zap.String("path", out), zap.Stringer("view", view))
	}

	w := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	for i, f := range res.Folds {
		fmt.Fprintf(w, "fold %d: split %d, moved %d, skipped %d, layers %d\n",
			i+1, f.Split, f.Moved, f.Skipped, f.Layers)
	}
	s := res.Sheet
	lo, hi := s.Bounds()
	fmt.Fprintf(w, "%d layers, %d facets, bounds %v-%v\n", len(s.Layers()), s.FacetCount(), lo, hi)
	return nil
}

// ---------------------------------------------------------------------------
// validate
// ---------------------------------------------------------------------------

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script>",
		Short: "Evaluate a fold script and check the sheet's structure",
		Long: `Evaluate a fold script, then check adjacency symmetry, layer
bookkeeping and the geometry of glued edges. Errors fail the command;
warnings are only printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := root.evaluate(cmd, args[0], false)
			if err != nil {
				return err
			}
			vr := paper.ValidateAll(res.Sheet)
			w := cmd.OutOrStdout()
			for _, e := range vr.Errors {
				fmt.Fprintf(w, "error: %s\n", e.Error())
			}
			for _, warn := range vr.Warnings {
				fmt.Fprintf(w, "warning: facet %d: %s\n", warn.Facet, warn.Message)
			}
			if !vr.OK() {
				return fmt.Errorf("%d validation error(s)", len(vr.Errors))
			}
			fmt.Fprintf(w, "ok: %d facets in %d layers\n", res.Sheet.FacetCount(), len(res.Sheet.Layers()))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// pick
// ---------------------------------------------------------------------------

func newPickCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <script> <x> <y>",
		Short: "List the facets under a point of the folded sheet, top-most first",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}
			res, err := root.evaluate(cmd, args[0], false)
			if err != nil {
				return err
			}
			p, err := pick.New(res.Sheet, sdfx.New())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			hits := p.All(geom.Pt(x, y))
			if len(hits) == 0 {
				fmt.Fprintln(w, "no facet")
				return nil
			}
			for _, f := range hits {
				fmt.Fprintf(w, "facet %d depth %d parity %d\n", f.ID(), f.Depth(), f.Parity())
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// axioms
// ---------------------------------------------------------------------------

func newAxiomsCmd() *cobra.Command {
	var points, lines int
	cmd := &cobra.Command{
		Use:   "axioms",
		Short: "List the fold axioms, optionally those matching a selection",
		Long: `List the Huzita-Justin fold axioms with their inputs.

With --points and --lines, only axioms consuming exactly that selection
are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := axiom.All
			if cmd.Flags().Changed("points") || cmd.Flags().Changed("lines") {
				var sel axiom.Selection
				for i := 0; i < points; i++ {
					sel = append(sel, axiom.PointElement{})
				}
				for i := 0; i < lines; i++ {
					sel = append(sel, axiom.LineElement{})
				}
				list = axiom.Available(sel)
			}
			w := cmd.OutOrStdout()
			for _, a := range list {
				np, nl := a.Requires()
				fmt.Fprintf(w, "%s  %d point(s), %d line(s)  %s\n", a, np, nl, a.Describe())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "number of selected points")
	cmd.Flags().IntVar(&lines, "lines", 0, "number of selected lines")
	return cmd
}

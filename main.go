package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Version is set at build time via -ldflags
var Version = "dev"

// AppOptions holds the parsed command line.
type AppOptions struct {
	ConfigFile string

	// Inputs and outputs
	Fixed     string
	Movable   string
	Transform string
	Input     string
	Output    string

	// Registration parameters, applied only when listed in SetFlags
	VoxelSize            float64
	GridLimits           []float64
	BufferVoxels         int
	MatchingMode         string
	NumCorrespondences   int
	MaxEuclideanDistance float64
	NumIterations        int
	Weights              []float64
	Seed                 int64

	// Debug artifacts
	DebugDir       string
	DebugGeoJSON   bool
	DebugSVG       bool
	DebugHistogram bool

	// Field rendering
	SliceZ         float64
	PixelsPerVoxel int

	// Modes
	Apply       bool
	RenderField bool
	Info        bool

	Quiet   bool
	Profile bool

	SetFlags map[string]bool
}

// Application is the set of operations the command line dispatches to.
type Application interface {
	ApplyOptions(opts AppOptions) error
	RunRegister() error
	RunApply() error
	RunRenderField() error
	RunInfo(out io.Writer) error
}

func main() {
	app := NewApp()
	if err := run(os.Args[1:], os.Stdout, app); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("Error: %v", err)
	}
}

func run(args []string, out io.Writer, app Application) error {
	fs := flag.NewFlagSet("gbpcm", flag.ContinueOnError)
	fs.SetOutput(out)

	var opts AppOptions
	var gridLimits, weights string
	fs.StringVar(&opts.ConfigFile, "config", "", "Path to YAML configuration file")
	fs.StringVar(&opts.Fixed, "fixed", "", "Path to fixed point cloud")
	fs.StringVar(&opts.Movable, "movable", "", "Path to movable point cloud")
	fs.StringVar(&opts.Transform, "transform", "transform.gbpcm", "Path to transform file (written by registration, read by -apply, -render-field and -info)")
	fs.StringVar(&opts.Input, "input", "", "Point cloud to transform with -apply")
	fs.StringVar(&opts.Output, "output", "", "Output file for -apply (point cloud) or -render-field (PNG)")
	fs.Float64Var(&opts.VoxelSize, "voxel-size", 1, "Voxel size of translation grids")
	fs.StringVar(&gridLimits, "grid-limits", "0,0,0,0,0,0", "Grid limits \"x_min,y_min,z_min,x_max,y_max,z_max\"; all zero for automatic limits")
	fs.IntVar(&opts.BufferVoxels, "buffer-voxels", 2, "Number of buffer voxels around the translation grids")
	fs.StringVar(&opts.MatchingMode, "matching-mode", "nn", "Matching mode: nn (nearest neighbor) or id (correspondence_id)")
	fs.IntVar(&opts.NumCorrespondences, "num-correspondences", 10000, "Number of correspondences")
	fs.Float64Var(&opts.MaxEuclideanDistance, "max-euclidean-distance", 1, "Maximum euclidean distance between corresponding points")
	fs.IntVar(&opts.NumIterations, "num-iterations", 5, "Number of iterations")
	fs.StringVar(&weights, "weights", "1,1,1,1", "Weights of zero observations for f,fx/fy/fz,fxy/fxz/fyz,fxyz (only the first is applied)")
	fs.Int64Var(&opts.Seed, "seed", 1, "Seed for selecting correspondences")
	fs.StringVar(&opts.DebugDir, "debug-dir", "", "Directory for per-iteration debug output")
	fs.BoolVar(&opts.DebugGeoJSON, "debug-geojson", false, "Also write correspondences as GeoJSON")
	fs.BoolVar(&opts.DebugSVG, "debug-svg", false, "Also write an SVG residual map")
	fs.BoolVar(&opts.DebugHistogram, "debug-histogram", false, "Also write a residual histogram PNG")
	fs.Float64Var(&opts.SliceZ, "slice-z", 0, "Height of the slice rendered by -render-field")
	fs.IntVar(&opts.PixelsPerVoxel, "pixels-per-voxel", 8, "Resolution of -render-field")
	fs.BoolVar(&opts.Apply, "apply", false, "Transform -input with -transform and write -output")
	fs.BoolVar(&opts.RenderField, "render-field", false, "Render a horizontal slice of -transform to -output")
	fs.BoolVar(&opts.Info, "info", false, "Print the header of -transform")
	fs.BoolVar(&opts.Quiet, "quiet", false, "Suppress log output")
	fs.BoolVar(&opts.Profile, "profile", false, "Log time spent per section")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts.SetFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.SetFlags[f.Name] = true })

	var err error
	if opts.GridLimits, err = parseFloatList(gridLimits); err != nil {
		return fmt.Errorf("-grid-limits: %w", err)
	}
	if opts.Weights, err = parseFloatList(weights); err != nil {
		return fmt.Errorf("-weights: %w", err)
	}

	fmt.Fprintf(out, "gbpcm version: %s\n", Version)

	if err := app.ApplyOptions(opts); err != nil {
		return err
	}

	switch {
	case opts.Info:
		return app.RunInfo(out)
	case opts.Apply:
		return app.RunApply()
	case opts.RenderField:
		return app.RunRenderField()
	case opts.Fixed != "" || opts.Movable != "":
		return app.RunRegister()
	}

	fmt.Fprintln(out, "Use -fixed and -movable to register two point clouds")
	fmt.Fprintln(out, "Use -apply -input IN -output OUT to transform a point cloud")
	fmt.Fprintln(out, "Use -render-field -output OUT.png to render a field slice")
	fmt.Fprintln(out, "Use -info to print a transform file header")
	return nil
}

// parseFloatList parses "a,b,c".
func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q): %w", i, p, err)
		}
		out[i] = v
	}
	return out, nil
}

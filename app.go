package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kwv/gbpcm/nonrigid"
)

// App encapsulates the application state and dependencies
type App struct {
	Config    *nonrigid.Config
	Profiler  *nonrigid.Profiler
	Publisher *nonrigid.Publisher

	opts AppOptions
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		Config: nonrigid.DefaultConfig(),
	}
}

// ApplyOptions loads the configuration file, if any, and overrides it with the
// flags given on the command line.
func (a *App) ApplyOptions(opts AppOptions) error {
	a.opts = opts

	if opts.Quiet {
		log.SetOutput(io.Discard)
	}
	if opts.Profile {
		a.Profiler = nonrigid.NewProfiler()
	}

	if opts.ConfigFile != "" {
		cfg, err := nonrigid.LoadConfig(opts.ConfigFile)
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	rc := &a.Config.Registration
	set := opts.SetFlags
	if set["voxel-size"] {
		rc.VoxelSize = opts.VoxelSize
	}
	if set["grid-limits"] {
		rc.GridLimits = opts.GridLimits
	}
	if set["buffer-voxels"] {
		rc.BufferVoxels = opts.BufferVoxels
	}
	if set["matching-mode"] {
		rc.MatchingMode = opts.MatchingMode
	}
	if set["num-correspondences"] {
		rc.NumCorrespondences = opts.NumCorrespondences
	}
	if set["max-euclidean-distance"] {
		rc.MaxEuclideanDistance = opts.MaxEuclideanDistance
	}
	if set["num-iterations"] {
		rc.NumIterations = opts.NumIterations
	}
	if set["weights"] {
		rc.Weights = opts.Weights
	}
	if set["seed"] {
		rc.Seed = opts.Seed
	}

	dc := &a.Config.Debug
	if set["debug-dir"] {
		dc.Dir = opts.DebugDir
	}
	dc.GeoJSON = dc.GeoJSON || opts.DebugGeoJSON
	dc.SVG = dc.SVG || opts.DebugSVG
	dc.Histogram = dc.Histogram || opts.DebugHistogram

	return a.Config.Validate()
}

// RunRegister registers the movable cloud onto the fixed cloud and writes the
// estimated transform.
func (a *App) RunRegister() error {
	if a.opts.Fixed == "" || a.opts.Movable == "" {
		return fmt.Errorf("both -fixed and -movable are required")
	}
	rc := a.Config.Registration
	useIDs := rc.MatchingMode == nonrigid.MatchingModeID

	log.Println("Start of \"gbpcm\"")
	fixed, err := a.loadCloud(a.opts.Fixed, useIDs)
	if err != nil {
		return err
	}
	movable, err := a.loadCloud(a.opts.Movable, useIDs)
	if err != nil {
		return err
	}

	regOpts := []nonrigid.RegistrationOption{
		nonrigid.WithReporters(nonrigid.LogReporter{}),
		nonrigid.WithSolver(a.Config.Solver),
	}
	if a.Profiler != nil {
		regOpts = append(regOpts, nonrigid.WithRegistrationObserver(a.Profiler))
	}
	if a.Config.Debug.Dir != "" {
		debug, err := nonrigid.NewDebugExporter(a.Config.Debug)
		if err != nil {
			return err
		}
		log.Printf("Debug export of correspondences to %q", debug.Dir)
		regOpts = append(regOpts, nonrigid.WithDebugExporter(debug))
	}

	mqttCfg := nonrigid.ResolveMQTTConfig(a.Config.MQTT)
	client, err := nonrigid.ConnectMQTT(mqttCfg)
	if err != nil {
		log.Printf("Progress publishing disabled: %v", err)
	}
	if client != nil {
		defer client.Disconnect(250)
		a.Publisher = nonrigid.NewPublisher(client, mqttCfg.PublishPrefix)
		regOpts = append(regOpts, nonrigid.WithReporters(a.Publisher))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := nonrigid.Register(ctx, fixed, movable, rc, regOpts...)
	if err != nil {
		return err
	}

	log.Printf("Export of estimated translation grids to %q", a.opts.Transform)
	if err := movable.SaveTransform(a.opts.Transform); err != nil {
		return err
	}
	if a.Profiler != nil {
		a.Profiler.LogSummary()
	}
	log.Printf("Finished run %s", result.RunID)
	return nil
}

func (a *App) loadCloud(path string, requireIDs bool) (*nonrigid.PointCloud, error) {
	table, err := nonrigid.ReadCloudFile(path)
	if err != nil {
		return nil, err
	}
	pc, err := table.ToPointCloud(true, requireIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Read %s with %d points", path, pc.NumPoints())
	return pc, nil
}

// RunApply transforms -input with the grids of -transform and writes -output,
// keeping all columns of the input.
func (a *App) RunApply() error {
	if a.opts.Input == "" || a.opts.Output == "" {
		return fmt.Errorf("-apply needs -input and -output")
	}
	table, err := nonrigid.ReadCloudFile(a.opts.Input)
	if err != nil {
		return err
	}
	pc, err := nonrigid.NewPointCloud(table.Coordinates())
	if err != nil {
		return err
	}
	if err := pc.LoadTransform(a.opts.Transform); err != nil {
		return err
	}
	if err := pc.UpdateCurrent(); err != nil {
		return err
	}
	if err := table.SetCoordinates(pc.Current()); err != nil {
		return err
	}
	if err := nonrigid.WriteCloudFile(a.opts.Output, table); err != nil {
		return err
	}
	log.Printf("Transformed %d points into %s", pc.NumPoints(), a.opts.Output)
	return nil
}

// RunRenderField renders one horizontal slice of the transform to a PNG.
func (a *App) RunRenderField() error {
	if a.opts.Output == "" {
		return fmt.Errorf("-render-field needs -output")
	}
	f, err := os.Open(a.opts.Transform)
	if err != nil {
		return fmt.Errorf("opening transform: %w", err)
	}
	grids, _, err := nonrigid.ReadTransform(f)
	f.Close()
	if err != nil {
		return err
	}

	slice, err := nonrigid.RenderFieldSlice(grids, a.opts.SliceZ, a.opts.PixelsPerVoxel)
	if err != nil {
		return err
	}
	out, err := os.Create(a.opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := slice.EncodePNG(out); err != nil {
		return err
	}
	log.Printf("Rendered field slice z=%g to %s (max magnitude %.4f)", a.opts.SliceZ, a.opts.Output, slice.MaxMagnitude)
	return nil
}

// RunInfo prints the header of the transform file.
func (a *App) RunInfo(out io.Writer) error {
	f, err := os.Open(a.opts.Transform)
	if err != nil {
		return fmt.Errorf("opening transform: %w", err)
	}
	defer f.Close()
	h, err := nonrigid.ReadTransformHeader(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Transform:  %s (version %d)\n", a.opts.Transform, h.Version)
	fmt.Fprintf(out, "Origin:     %.3f %.3f %.3f\n", h.Origin.X, h.Origin.Y, h.Origin.Z)
	fmt.Fprintf(out, "Voxels:     %d x %d x %d\n", h.NumVoxels[0], h.NumVoxels[1], h.NumVoxels[2])
	fmt.Fprintf(out, "Voxel size: %g\n", h.VoxelSize)
	return nil
}

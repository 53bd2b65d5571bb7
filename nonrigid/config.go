package nonrigid

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Matching modes.
const (
	MatchingModeNN = "nn"
	MatchingModeID = "id"
)

// Config is the complete configuration of a registration run.
type Config struct {
	Registration RegistrationConfig `yaml:"registration" json:"registration"`
	Solver       SolverSettings     `yaml:"solver" json:"solver"`
	Debug        DebugConfig        `yaml:"debug,omitempty" json:"debug,omitempty"`
	MQTT         MQTTConfig         `yaml:"mqtt,omitempty" json:"mqtt,omitempty"`
}

// RegistrationConfig holds the parameters of the registration loop.
type RegistrationConfig struct {
	VoxelSize            float64   `yaml:"voxelSize" json:"voxelSize"`
	GridLimits           []float64 `yaml:"gridLimits,omitempty" json:"gridLimits,omitempty"` // xmin ymin zmin xmax ymax zmax, all zero for automatic
	BufferVoxels         int       `yaml:"bufferVoxels" json:"bufferVoxels"`
	MatchingMode         string    `yaml:"matchingMode" json:"matchingMode"` // "nn" or "id"
	NumCorrespondences   int       `yaml:"numCorrespondences" json:"numCorrespondences"`
	MaxEuclideanDistance float64   `yaml:"maxEuclideanDistance" json:"maxEuclideanDistance"`
	NumIterations        int       `yaml:"numIterations" json:"numIterations"`
	Weights              []float64 `yaml:"weights" json:"weights"` // only the first is applied
	Seed                 int64     `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DebugConfig selects the per-iteration debug artifacts.
type DebugConfig struct {
	Dir       string `yaml:"dir,omitempty" json:"dir,omitempty"`
	GeoJSON   bool   `yaml:"geojson,omitempty" json:"geojson,omitempty"`
	SVG       bool   `yaml:"svg,omitempty" json:"svg,omitempty"`
	Histogram bool   `yaml:"histogram,omitempty" json:"histogram,omitempty"`
}

// MQTTConfig holds MQTT connection settings for progress publishing.
type MQTTConfig struct {
	Broker        string `yaml:"broker,omitempty" json:"broker,omitempty"`
	PublishPrefix string `yaml:"publishPrefix,omitempty" json:"publishPrefix,omitempty"`
	ClientID      string `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"`
}

// DefaultRegistrationConfig returns the defaults of the command line tool.
func DefaultRegistrationConfig() RegistrationConfig {
	return RegistrationConfig{
		VoxelSize:            1,
		GridLimits:           []float64{0, 0, 0, 0, 0, 0},
		BufferVoxels:         2,
		MatchingMode:         MatchingModeNN,
		NumCorrespondences:   10000,
		MaxEuclideanDistance: 1,
		NumIterations:        5,
		Weights:              []float64{1, 1, 1, 1},
		Seed:                 1,
	}
}

// DefaultConfig returns a configuration with default registration and solver settings.
func DefaultConfig() *Config {
	return &Config{
		Registration: DefaultRegistrationConfig(),
		Solver:       DefaultSolverSettings(),
		MQTT:         MQTTConfig{PublishPrefix: "gbpcm"},
	}
}

// Limits converts GridLimits into a GridLimits value.
func (rc RegistrationConfig) Limits() GridLimits {
	if len(rc.GridLimits) != 6 {
		return GridLimits{}
	}
	l := rc.GridLimits
	return GridLimits{
		Min: r3.Vec{X: l[0], Y: l[1], Z: l[2]},
		Max: r3.Vec{X: l[3], Y: l[4], Z: l[5]},
	}
}

// Validate checks the registration parameters.
func (rc RegistrationConfig) Validate() error {
	if !(rc.VoxelSize > 0) {
		return fmt.Errorf("registration.voxelSize must be positive, got %g: %w", rc.VoxelSize, ErrInvalidArgument)
	}
	if len(rc.GridLimits) != 0 && len(rc.GridLimits) != 6 {
		return fmt.Errorf("registration.gridLimits needs 6 values, got %d: %w", len(rc.GridLimits), ErrInvalidArgument)
	}
	if l := rc.Limits(); !l.IsZero() {
		if !(l.Max.X > l.Min.X && l.Max.Y > l.Min.Y && l.Max.Z > l.Min.Z) {
			return fmt.Errorf("registration.gridLimits %v do not span a box: %w", rc.GridLimits, ErrInvalidArgument)
		}
	}
	if rc.BufferVoxels < 0 {
		return fmt.Errorf("registration.bufferVoxels must not be negative, got %d: %w", rc.BufferVoxels, ErrInvalidArgument)
	}
	if rc.MatchingMode != MatchingModeNN && rc.MatchingMode != MatchingModeID {
		return fmt.Errorf("registration.matchingMode must be %q or %q, got %q: %w",
			MatchingModeNN, MatchingModeID, rc.MatchingMode, ErrInvalidArgument)
	}
	if rc.NumCorrespondences <= 0 {
		return fmt.Errorf("registration.numCorrespondences must be positive, got %d: %w", rc.NumCorrespondences, ErrInvalidArgument)
	}
	if !(rc.MaxEuclideanDistance > 0) {
		return fmt.Errorf("registration.maxEuclideanDistance must be positive, got %g: %w", rc.MaxEuclideanDistance, ErrInvalidArgument)
	}
	if rc.NumIterations <= 0 {
		return fmt.Errorf("registration.numIterations must be positive, got %d: %w", rc.NumIterations, ErrInvalidArgument)
	}
	if len(rc.Weights) == 0 || len(rc.Weights) > numPriorWeights {
		return fmt.Errorf("registration.weights needs 1 to %d values, got %d: %w", numPriorWeights, len(rc.Weights), ErrInvalidArgument)
	}
	for i, w := range rc.Weights {
		if w < 0 {
			return fmt.Errorf("registration.weights[%d] must not be negative: %w", i, ErrInvalidArgument)
		}
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Registration.Validate(); err != nil {
		return err
	}
	if c.Solver.Tolerance < 0 || c.Solver.MaxIterations < 0 {
		return fmt.Errorf("solver settings must not be negative: %w", ErrInvalidArgument)
	}
	return nil
}

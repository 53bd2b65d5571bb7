package nonrigid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `registration:
  voxelSize: 0.5
  gridLimits: [0, 0, 0, 10, 10, 2]
  matchingMode: id
  weights: [0.1]
solver:
  maxIterations: 200
mqtt:
  broker: tcp://localhost:1883
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Registration.VoxelSize = 0.5
	want.Registration.GridLimits = []float64{0, 0, 0, 10, 10, 2}
	want.Registration.MatchingMode = MatchingModeID
	want.Registration.Weights = []float64{0.1}
	want.Solver.MaxIterations = 200
	want.MQTT.Broker = "tcp://localhost:1883"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, GridLimits{Max: r3.Vec{X: 10, Y: 10, Z: 2}}, cfg.Registration.Limits())
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("registration: [1, 2"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("registration:\n  matchingMode: closest\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Registration.NumIterations = 3
	cfg.Debug = DebugConfig{Dir: "/tmp/debug", SVG: true}

	require.NoError(t, SaveConfig(path, cfg))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RegistrationConfig)
	}{
		{"zero voxel size", func(c *RegistrationConfig) { c.VoxelSize = 0 }},
		{"five grid limits", func(c *RegistrationConfig) { c.GridLimits = []float64{0, 0, 0, 1, 1} }},
		{"inverted grid limits", func(c *RegistrationConfig) { c.GridLimits = []float64{0, 0, 0, 1, -1, 1} }},
		{"negative buffer", func(c *RegistrationConfig) { c.BufferVoxels = -1 }},
		{"unknown matching mode", func(c *RegistrationConfig) { c.MatchingMode = "closest" }},
		{"no correspondences", func(c *RegistrationConfig) { c.NumCorrespondences = 0 }},
		{"zero max distance", func(c *RegistrationConfig) { c.MaxEuclideanDistance = 0 }},
		{"no iterations", func(c *RegistrationConfig) { c.NumIterations = 0 }},
		{"no weights", func(c *RegistrationConfig) { c.Weights = nil }},
		{"too many weights", func(c *RegistrationConfig) { c.Weights = []float64{1, 1, 1, 1, 1} }},
		{"negative weight", func(c *RegistrationConfig) { c.Weights = []float64{-0.5} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRegistrationConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidArgument)
		})
	}

	cfg := DefaultRegistrationConfig()
	assert.NoError(t, cfg.Validate())
	cfg.GridLimits = nil
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Limits().IsZero())
}

func TestConfig_ValidateSolver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.MaxIterations = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidArgument)
}

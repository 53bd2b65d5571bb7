package nonrigid

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func constantFieldGrids(t *testing.T, shift r3.Vec) [3]*TranslationGrid {
	t.Helper()
	pc := newTestCloud(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vec{X: 2.5, Y: 1.5, Z: 0.5})
	require.NoError(t, pc.InitializeTranslationGrids(1, 0, GridLimits{Max: r3.Vec{X: 3, Y: 2, Z: 1}}))
	grids := pc.Grids()
	for axis, v := range []float64{shift.X, shift.Y, shift.Z} {
		fillGrid(t, grids[axis], func(int, int, int) NodeValues { return NodeValues{ChannelF: v} })
	}
	return grids
}

func TestRenderFieldSlice(t *testing.T) {
	grids := constantFieldGrids(t, r3.Vec{X: 3, Y: 0, Z: 4})
	s, err := RenderFieldSlice(grids, 0.5, 4)
	require.NoError(t, err)

	assert.InDelta(t, 5, s.MaxMagnitude, 1e-12)
	b := s.Image.Bounds()
	assert.Equal(t, 3*4, b.Dx())
	assert.Equal(t, 2*4+legendHeight, b.Dy())

	// A constant field renders at full intensity everywhere.
	want := heatColor(1)
	assert.InDelta(t, float64(want.R), float64(s.Image.RGBAAt(0, 0).R), 1)
	assert.InDelta(t, float64(want.B), float64(s.Image.RGBAAt(11, 7).B), 1)

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, b, img.Bounds())
}

func TestRenderFieldSlice_ZeroField(t *testing.T) {
	grids := constantFieldGrids(t, r3.Vec{})
	s, err := RenderFieldSlice(grids, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.MaxMagnitude)
	assert.Equal(t, heatColor(0), s.Image.RGBAAt(1, 1))
}

func TestRenderFieldSlice_Errors(t *testing.T) {
	grids := constantFieldGrids(t, r3.Vec{})

	_, err := RenderFieldSlice(grids, 1.5, 2)
	assert.ErrorIs(t, err, ErrOutOfDomain)
	_, err = RenderFieldSlice(grids, 0.5, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	grids[1] = nil
	_, err = RenderFieldSlice(grids, 0.5, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestHeatColor(t *testing.T) {
	assert.Equal(t, uint8(0), heatColor(0).R)
	assert.Equal(t, heatColor(1), heatColor(2))
	assert.Equal(t, uint8(255), heatColor(1).B)
}

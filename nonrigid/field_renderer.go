package nonrigid

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// legendHeight is the height in pixels of the text strip below the heat map.
const legendHeight = 20

// FieldSlice is a rendered horizontal slice of a translation field.
type FieldSlice struct {
	Image        *image.RGBA
	MaxMagnitude float64
}

// RenderFieldSlice samples the magnitude of the translation field on the plane
// z = height at pixel centers, pixelsPerVoxel pixels per voxel edge, and draws
// it as a heat map with a legend naming the maximum magnitude.
func RenderFieldSlice(grids [3]*TranslationGrid, height float64, pixelsPerVoxel int) (*FieldSlice, error) {
	for i, g := range grids {
		if g == nil || !g.SameGeometry(grids[0]) {
			return nil, fmt.Errorf("rendering field slice: grid %d missing or mismatched: %w", i, ErrInvalidArgument)
		}
	}
	if pixelsPerVoxel < 1 {
		return nil, fmt.Errorf("rendering field slice: %d pixels per voxel: %w", pixelsPerVoxel, ErrInvalidArgument)
	}
	g := grids[0]
	origin, upper := g.Origin(), g.UpperBound()
	if height < origin.Z || height > upper.Z {
		return nil, fmt.Errorf("slice height %g outside [%g, %g]: %w", height, origin.Z, upper.Z, ErrOutOfDomain)
	}

	nx, ny, _ := g.VoxelCounts()
	w, h := nx*pixelsPerVoxel, ny*pixelsPerVoxel
	step := g.VoxelSize() / float64(pixelsPerVoxel)

	points := make([]r3.Vec, 0, w*h)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			points = append(points, r3.Vec{
				X: origin.X + (float64(px)+0.5)*step,
				// image rows grow downwards, y grows upwards
				Y: origin.Y + (float64(h-1-py)+0.5)*step,
				Z: height,
			})
		}
	}

	var comps [3][]float64
	for axis, grid := range grids {
		v, err := grid.EvaluateField(points)
		if err != nil {
			return nil, fmt.Errorf("rendering field slice: %w", err)
		}
		comps[axis] = v
	}

	mags := make([]float64, len(points))
	var maxMag float64
	for i := range points {
		mags[i] = math.Sqrt(comps[0][i]*comps[0][i] + comps[1][i]*comps[1][i] + comps[2][i]*comps[2][i])
		maxMag = math.Max(maxMag, mags[i])
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h+legendHeight))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			t := 0.0
			if maxMag > 0 {
				t = mags[py*w+px] / maxMag
			}
			img.SetRGBA(px, py, heatColor(t))
		}
	}
	for py := h; py < h+legendHeight; py++ {
		for px := 0; px < w; px++ {
			img.SetRGBA(px, py, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	drawText(img, 2, h+legendHeight-5, fmt.Sprintf("z=%.3f max=%.4f", height, maxMag), color.RGBA{A: 255})

	return &FieldSlice{Image: img, MaxMagnitude: maxMag}, nil
}

// EncodePNG writes the slice as PNG.
func (s *FieldSlice) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.Image); err != nil {
		return fmt.Errorf("encoding field slice: %v: %w", err, ErrIO)
	}
	return nil
}

// heatColor maps t in [0, 1] to black-red-yellow-white.
func heatColor(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	r := math.Min(1, 3*t)
	g := math.Min(1, math.Max(0, 3*t-1))
	b := math.Max(0, 3*t-2)
	return color.RGBA{R: uint8(255 * r), G: uint8(255 * g), B: uint8(255 * b), A: 255}
}

func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

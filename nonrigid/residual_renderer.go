package nonrigid

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"
)

// ResidualMap draws the correspondences of one iteration in plan view: a line
// from every fixed point to its current movable partner, and a dot on the fixed
// point colored by the signed point-to-plane distance.
type ResidualMap struct {
	Width   float64 // drawing width in millimeters
	Padding float64 // margin in millimeters
	DotSize float64 // dot radius in millimeters
}

// NewResidualMap returns a map renderer with default sizes.
func NewResidualMap() *ResidualMap {
	return &ResidualMap{Width: 200, Padding: 5, DotSize: 0.6}
}

type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the map as SVG.
func (m *ResidualMap) RenderToSVG(w io.Writer, c *Correspondences) error {
	pairs := c.Pairs()
	if len(pairs) == 0 {
		return fmt.Errorf("rendering residual map: %w", ErrEmptyResult)
	}

	pts := make(orb.MultiPoint, 0, 2*len(pairs))
	for _, p := range pairs {
		pts = append(pts, orb.Point{p.Fixed.X, p.Fixed.Y}, orb.Point{p.MovableCurrent.X, p.MovableCurrent.Y})
	}
	bound := pts.Bound()
	extent := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	if extent == 0 {
		extent = 1
	}
	scale := (m.Width - 2*m.Padding) / extent
	width := (bound.Max[0]-bound.Min[0])*scale + 2*m.Padding
	height := (bound.Max[1]-bound.Min[1])*scale + 2*m.Padding

	toPage := func(x, y float64) (float64, float64) {
		return (x-bound.Min[0])*scale + m.Padding, (y-bound.Min[1])*scale + m.Padding
	}

	svgRenderer := svg.New(w, width, height, nil)
	m.render(svgRenderer, pairs, c.PointToPlaneCurrent(), width, height, toPage)
	if err := svgRenderer.Close(); err != nil {
		return fmt.Errorf("closing svg: %w", err)
	}
	return nil
}

func (m *ResidualMap) render(r canvasRenderer, pairs []Pair, ptp Dists, width, height float64, toPage func(x, y float64) (float64, float64)) {
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	r.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	lineStyle := canvas.DefaultStyle
	lineStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	lineStyle.Stroke = canvas.Paint{Color: canvas.Gray}
	lineStyle.StrokeWidth = m.DotSize / 3
	for _, p := range pairs {
		x0, y0 := toPage(p.Fixed.X, p.Fixed.Y)
		x1, y1 := toPage(p.MovableCurrent.X, p.MovableCurrent.Y)
		path := &canvas.Path{}
		path.MoveTo(x0, y0)
		path.LineTo(x1, y1)
		r.RenderPath(path, lineStyle, canvas.Identity)
	}

	limit := 3 * ptp.StdMAD
	if limit == 0 {
		limit = math.Max(math.Abs(ptp.Mean), 1e-12)
	}
	for i, p := range pairs {
		var d float64
		if i < len(ptp.Values) {
			d = ptp.Values[i]
		}
		dotStyle := canvas.DefaultStyle
		dotStyle.Fill = canvas.Paint{Color: residualColor(d / limit)}
		dotStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
		x, y := toPage(p.Fixed.X, p.Fixed.Y)
		r.RenderPath(canvas.Circle(m.DotSize).Translate(x, y), dotStyle, canvas.Identity)
	}
}

// residualColor maps t in [-1, 1] to a blue-white-red ramp.
func residualColor(t float64) color.RGBA {
	t = math.Max(-1, math.Min(1, t))
	if t < 0 {
		v := uint8(255 * (1 + t))
		return color.RGBA{R: v, G: v, B: 255, A: 255}
	}
	v := uint8(255 * (1 - t))
	return color.RGBA{R: 255, G: v, B: v, A: 255}
}

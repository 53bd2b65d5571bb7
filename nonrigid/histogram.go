package nonrigid

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// histogramBins is the number of bins of residual histograms.
const histogramBins = 40

// WriteResidualHistogram draws a histogram of values and encodes it in the
// given format ("png", "svg", "pdf").
func WriteResidualHistogram(w io.Writer, title string, values []float64, format string) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram of %s: %w", title, ErrEmptyResult)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "point-to-plane distance"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), histogramBins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	p.Add(h)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("encoding histogram: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing histogram: %v: %w", err, ErrIO)
	}
	return nil
}

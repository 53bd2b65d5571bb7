package nonrigid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ExportCorrespondences writes every pair as two lines, the fixed point and
// the current movable point, followed by an empty line.
func (c *Correspondences) ExportCorrespondences(w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 96)
	for _, p := range c.Pairs() {
		buf = appendXYZ(buf[:0], p.Fixed.X, p.Fixed.Y, p.Fixed.Z)
		buf = append(buf, '\n')
		buf = appendXYZ(buf, p.MovableCurrent.X, p.MovableCurrent.Y, p.MovableCurrent.Z)
		buf = append(buf, '\n', '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("exporting correspondences: %v: %w", err, ErrIO)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("exporting correspondences: %v: %w", err, ErrIO)
	}
	return nil
}

func appendXYZ(buf []byte, x, y, z float64) []byte {
	buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, y, 'g', -1, 64)
	buf = append(buf, ' ')
	return strconv.AppendFloat(buf, z, 'g', -1, 64)
}

// DebugExporter writes per-iteration debug files into a directory.
type DebugExporter struct {
	Dir       string
	GeoJSON   bool
	SVG       bool
	Histogram bool
}

// NewDebugExporter checks that dir exists and returns an exporter writing the
// artifacts selected in cfg.
func NewDebugExporter(cfg DebugConfig) (*DebugExporter, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("debug directory %q: %v: %w", cfg.Dir, err, ErrIO)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("debug path %q is not a directory: %w", cfg.Dir, ErrIO)
	}
	return &DebugExporter{Dir: cfg.Dir, GeoJSON: cfg.GeoJSON, SVG: cfg.SVG, Histogram: cfg.Histogram}, nil
}

// Path returns the path of an artifact of iteration it, for example
// correspondences_it001.poly.
func (d *DebugExporter) Path(prefix string, it int, suffix string) string {
	return filepath.Join(d.Dir, fmt.Sprintf("%s_it%03d%s", prefix, it, suffix))
}

// Export writes the artifacts of one iteration.
func (d *DebugExporter) Export(it int, c *Correspondences) error {
	if err := writeFile(d.Path("correspondences", it, ".poly"), c.ExportCorrespondences); err != nil {
		return err
	}
	if d.GeoJSON {
		err := writeFile(d.Path("correspondences", it, ".geojson"), func(w io.Writer) error {
			data, err := CorrespondencesGeoJSON(c).MarshalJSON()
			if err != nil {
				return fmt.Errorf("encoding geojson: %w", err)
			}
			_, err = w.Write(data)
			return err
		})
		if err != nil {
			return err
		}
	}
	if d.SVG {
		err := writeFile(d.Path("residuals", it, ".svg"), func(w io.Writer) error {
			return NewResidualMap().RenderToSVG(w, c)
		})
		if err != nil {
			return err
		}
	}
	if d.Histogram {
		title := fmt.Sprintf("Iteration %d residuals", it)
		err := writeFile(d.Path("residuals", it, "_hist.png"), func(w io.Writer) error {
			return WriteResidualHistogram(w, title, c.PointToPlaneCurrent().Values, "png")
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v: %w", path, err, ErrIO)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %v: %w", path, cerr, ErrIO)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

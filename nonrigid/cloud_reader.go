package nonrigid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Canonical column names.
const (
	ColumnX                = "x"
	ColumnY                = "y"
	ColumnZ                = "z"
	ColumnNormalX          = "nx"
	ColumnNormalY          = "ny"
	ColumnNormalZ          = "nz"
	ColumnCorrespondenceID = "correspondence_id"
)

// positionalColumns names the columns of a file without header line.
var positionalColumns = []string{
	ColumnX, ColumnY, ColumnZ,
	ColumnNormalX, ColumnNormalY, ColumnNormalZ,
	ColumnCorrespondenceID,
}

var columnAliases = map[string]string{
	"normalx":          ColumnNormalX,
	"normal_x":         ColumnNormalX,
	"normaly":          ColumnNormalY,
	"normal_y":         ColumnNormalY,
	"normalz":          ColumnNormalZ,
	"normal_z":         ColumnNormalZ,
	"correspondenceid": ColumnCorrespondenceID,
	"id":               ColumnCorrespondenceID,
}

// CloudTable is a point cloud read from an ASCII table, one column per attribute.
type CloudTable struct {
	Columns map[string][]float64
	Order   []string
}

func canonicalColumn(name string) string {
	name = strings.ToLower(strings.TrimLeft(name, "/#"))
	if alias, ok := columnAliases[name]; ok {
		return alias
	}
	return name
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ';'
	})
}

// ReadCloudFile reads a whitespace or comma separated point table.
func ReadCloudFile(path string) (*CloudTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point cloud: %v: %w", err, ErrIO)
	}
	defer f.Close()

	t, err := ReadCloud(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// ReadCloud reads a point table. An optional first line names the columns;
// without it the columns are x y z [nx ny nz [correspondence_id]]. Empty lines
// and lines starting with '#' are skipped.
func ReadCloud(r io.Reader) (*CloudTable, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var t *CloudTable
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitFields(line)

		values := make([]float64, len(fields))
		numeric := true
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				numeric = false
				break
			}
			values[i] = v
		}

		if t == nil {
			if !numeric {
				names := make([]string, len(fields))
				for i, f := range fields {
					names[i] = canonicalColumn(f)
				}
				t = newCloudTable(names)
				continue
			}
			t = newCloudTable(positionalNames(len(fields)))
		}

		if !numeric {
			return nil, fmt.Errorf("line %d: non-numeric value in %q: %w", lineNo, line, ErrIO)
		}
		if len(values) != len(t.Order) {
			return nil, fmt.Errorf("line %d: %d values, expected %d: %w", lineNo, len(values), len(t.Order), ErrIO)
		}
		for i, name := range t.Order {
			t.Columns[name] = append(t.Columns[name], values[i])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning point cloud: %v: %w", err, ErrIO)
	}
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("point cloud is empty: %w", ErrIO)
	}
	for _, c := range []string{ColumnX, ColumnY, ColumnZ} {
		if _, ok := t.Columns[c]; !ok {
			return nil, fmt.Errorf("point cloud has no %q column (columns: %s): %w", c, strings.Join(t.Order, ", "), ErrIO)
		}
	}
	return t, nil
}

func positionalNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		if i < len(positionalColumns) {
			names[i] = positionalColumns[i]
		} else {
			names[i] = "col" + strconv.Itoa(i)
		}
	}
	return names
}

func newCloudTable(names []string) *CloudTable {
	t := &CloudTable{Columns: make(map[string][]float64, len(names))}
	for i, n := range names {
		if _, dup := t.Columns[n]; dup {
			n = n + "_" + strconv.Itoa(i)
		}
		t.Columns[n] = nil
		t.Order = append(t.Order, n)
	}
	return t
}

// Len returns the number of rows.
func (t *CloudTable) Len() int {
	if len(t.Order) == 0 {
		return 0
	}
	return len(t.Columns[t.Order[0]])
}

// Has reports whether all named columns are present.
func (t *CloudTable) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := t.Columns[n]; !ok {
			return false
		}
	}
	return true
}

func (t *CloudTable) vecs(cx, cy, cz string) []r3.Vec {
	xs, ys, zs := t.Columns[cx], t.Columns[cy], t.Columns[cz]
	out := make([]r3.Vec, len(xs))
	for i := range xs {
		out[i] = r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}
	}
	return out
}

// Coordinates returns the x, y, z columns as vectors.
func (t *CloudTable) Coordinates() []r3.Vec {
	return t.vecs(ColumnX, ColumnY, ColumnZ)
}

// ToPointCloud builds a PointCloud, attaching normals and correspondence ids
// when present. Missing required attributes are an error.
func (t *CloudTable) ToPointCloud(requireNormals, requireIDs bool) (*PointCloud, error) {
	pc, err := NewPointCloud(t.Coordinates())
	if err != nil {
		return nil, err
	}

	hasNormals := t.Has(ColumnNormalX, ColumnNormalY, ColumnNormalZ)
	if requireNormals && !hasNormals {
		return nil, fmt.Errorf("point cloud needs nx, ny, nz columns (columns: %s): %w",
			strings.Join(t.Order, ", "), ErrInvalidArgument)
	}
	if hasNormals {
		if err := pc.SetNormals(t.vecs(ColumnNormalX, ColumnNormalY, ColumnNormalZ)); err != nil {
			return nil, err
		}
	}

	ids, hasIDs := t.Columns[ColumnCorrespondenceID]
	if requireIDs && !hasIDs {
		return nil, fmt.Errorf("point cloud needs a %s column (columns: %s): %w",
			ColumnCorrespondenceID, strings.Join(t.Order, ", "), ErrInvalidArgument)
	}
	if hasIDs {
		if err := pc.SetCorrespondenceIDs(ids); err != nil {
			return nil, err
		}
	}
	return pc, nil
}

// SetCoordinates replaces the x, y and z columns.
func (t *CloudTable) SetCoordinates(points []r3.Vec) error {
	if len(points) != t.Len() {
		return fmt.Errorf("%d coordinates for %d rows: %w", len(points), t.Len(), ErrInvalidArgument)
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	t.Columns[ColumnX], t.Columns[ColumnY], t.Columns[ColumnZ] = xs, ys, zs
	return nil
}

// WriteCloud writes the table with a header line naming the columns.
func WriteCloud(w io.Writer, t *CloudTable) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(t.Order, " "))
	bw.WriteByte('\n')

	cols := make([][]float64, len(t.Order))
	for i, name := range t.Order {
		cols[i] = t.Columns[name]
	}
	buf := make([]byte, 0, 32)
	for row := 0; row < t.Len(); row++ {
		for i, c := range cols {
			if i > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendFloat(buf[:0], c[row], 'g', -1, 64)
			bw.Write(buf)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing point cloud: %v: %w", err, ErrIO)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing point cloud: %v: %w", err, ErrIO)
	}
	return nil
}

// WriteCloudFile writes the table to path.
func WriteCloudFile(path string, t *CloudTable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating point cloud file: %v: %w", err, ErrIO)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing point cloud file: %v: %w", cerr, ErrIO)
		}
	}()
	return WriteCloud(f, t)
}

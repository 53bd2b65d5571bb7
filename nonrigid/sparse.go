package nonrigid

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// CSRMatrix is a sparse matrix in compressed sparse row form.
type CSRMatrix struct {
	csr *sparse.CSR
}

var _ mat.Matrix = (*CSRMatrix)(nil)

// NewCSRFromTriplets assembles a rows x cols matrix. Entries with the same row
// and column are summed.
func NewCSRFromTriplets(rows, cols int, triplets []Triplet) (*CSRMatrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("sparse matrix of size %d x %d: %w", rows, cols, ErrInvalidArgument)
	}

	ia := make([]int, len(triplets))
	ja := make([]int, len(triplets))
	data := make([]float64, len(triplets))
	for k, t := range triplets {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("entry (%d, %d) outside %d x %d matrix: %w", t.Row, t.Col, rows, cols, ErrInvalidArgument)
		}
		ia[k], ja[k], data[k] = t.Row, t.Col, t.Value
	}
	return &CSRMatrix{csr: sparse.NewCOO(rows, cols, ia, ja, data).ToCSR()}, nil
}

// Dims returns the number of rows and columns.
func (m *CSRMatrix) Dims() (rows, cols int) { return m.csr.Dims() }

// NNZ returns the number of stored entries.
func (m *CSRMatrix) NNZ() int { return m.csr.NNZ() }

// At returns the entry at row i, column j.
func (m *CSRMatrix) At(i, j int) float64 { return m.csr.At(i, j) }

// T returns the implicit transpose.
func (m *CSRMatrix) T() mat.Matrix { return m.csr.T() }

// MulVec computes dst = M x. dst must have length rows and x length cols.
func (m *CSRMatrix) MulVec(dst, x []float64) {
	clear(dst)
	m.csr.MulVecTo(dst, false, x)
}

// MulTransVec computes dst = Mᵀ x. dst must have length cols and x length rows.
func (m *CSRMatrix) MulTransVec(dst, x []float64) {
	clear(dst)
	m.csr.MulVecTo(dst, true, x)
}

// WeightedColumnSquares returns Σ_i w_i M_ij² for every column j, the diagonal
// of Mᵀ diag(w) M.
func (m *CSRMatrix) WeightedColumnSquares(w []float64) []float64 {
	_, cols := m.csr.Dims()
	out := make([]float64, cols)
	m.csr.DoNonZero(func(i, j int, v float64) {
		out[j] += w[i] * v * v
	})
	return out
}

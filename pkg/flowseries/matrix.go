// Package flowseries provides the dense time-major matrix type shared by
// the streamflow characteristic calculations. Rows are consecutive calendar
// days, columns are independent series (stations or simulations).
package flowseries

import "math"

// Matrix is a dense row-major matrix of daily flow values. The backing
// slice is always contiguous, so a block of consecutive rows can be viewed
// without copying.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New returns a rows x cols matrix with all values zero.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols <= 0 {
		panic("flowseries: non-positive matrix dimensions")
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// FromSeries wraps a single series as an n x 1 matrix. The slice is copied.
func FromSeries(values []float64) *Matrix {
	m := New(len(values), 1)
	copy(m.data, values)
	return m
}

// FromRows builds a matrix from per-day rows. Every row must have the same
// length.
func FromRows(rows [][]float64) *Matrix {
	if len(rows) == 0 {
		panic("flowseries: no rows")
	}
	m := New(len(rows), len(rows[0]))
	for t, row := range rows {
		if len(row) != m.cols {
			panic("flowseries: ragged rows")
		}
		copy(m.data[t*m.cols:(t+1)*m.cols], row)
	}
	return m
}

// Rows returns the number of time steps.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of series.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at time step t for series s.
func (m *Matrix) At(t, s int) float64 {
	if s < 0 || s >= m.cols {
		panic("flowseries: column out of range")
	}
	return m.data[t*m.cols+s]
}

// Set stores v at time step t for series s.
func (m *Matrix) Set(t, s int, v float64) {
	if s < 0 || s >= m.cols {
		panic("flowseries: column out of range")
	}
	m.data[t*m.cols+s] = v
}

// Row returns the values of time step t as a view into the backing slice.
func (m *Matrix) Row(t int) []float64 {
	return m.data[t*m.cols : (t+1)*m.cols]
}

// Col copies the values of series s into a new slice.
func (m *Matrix) Col(s int) []float64 {
	out := make([]float64, m.rows)
	for t := 0; t < m.rows; t++ {
		out[t] = m.data[t*m.cols+s]
	}
	return out
}

// RowRange returns the half-open row interval [i, j) as a matrix sharing
// the backing slice. Mutating the view mutates the original.
func (m *Matrix) RowRange(i, j int) *Matrix {
	if i < 0 || j < i || j > m.rows {
		panic("flowseries: row range out of bounds")
	}
	return &Matrix{
		rows: j - i,
		cols: m.cols,
		data: m.data[i*m.cols : j*m.cols],
	}
}

// SelectRows copies the rows where mask is true into a new matrix. The mask
// must cover every row.
func (m *Matrix) SelectRows(mask []bool) *Matrix {
	if len(mask) != m.rows {
		panic("flowseries: mask length mismatch")
	}
	n := 0
	for _, keep := range mask {
		if keep {
			n++
		}
	}
	out := New(n, m.cols)
	t := 0
	for i, keep := range mask {
		if keep {
			copy(out.data[t*m.cols:(t+1)*m.cols], m.data[i*m.cols:(i+1)*m.cols])
			t++
		}
	}
	return out
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.cols, m.rows)
	for t := 0; t < m.rows; t++ {
		for s := 0; s < m.cols; s++ {
			out.data[s*m.rows+t] = m.data[t*m.cols+s]
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// HasNaN reports whether any value is NaN.
func (m *Matrix) HasNaN() bool {
	for _, v := range m.data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

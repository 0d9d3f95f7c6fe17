package calculator

import "math"

// ResultMatrix holds computed characteristic values, one row per
// characteristic and one column per series (transposed when the caller
// asked for axis 1). Values are 32-bit floats initialized to NaN, so a row
// a characteristic failed to populate is visibly NaN rather than zero.
type ResultMatrix struct {
	rows int
	cols int
	data []float32
}

// NewResultMatrix returns a NaN-filled rows x cols result matrix.
func NewResultMatrix(rows, cols int) *ResultMatrix {
	data := make([]float32, rows*cols)
	nan := float32(math.NaN())
	for i := range data {
		data[i] = nan
	}
	return &ResultMatrix{rows: rows, cols: cols, data: data}
}

// Rows returns the number of characteristics (or series when transposed).
func (r *ResultMatrix) Rows() int { return r.rows }

// Cols returns the number of series (or characteristics when transposed).
func (r *ResultMatrix) Cols() int { return r.cols }

// At returns the value at row i, column j.
func (r *ResultMatrix) At(i, j int) float32 {
	if j < 0 || j >= r.cols {
		panic("calculator: result column out of range")
	}
	return r.data[i*r.cols+j]
}

// Set stores v at row i, column j.
func (r *ResultMatrix) Set(i, j int, v float32) {
	if j < 0 || j >= r.cols {
		panic("calculator: result column out of range")
	}
	r.data[i*r.cols+j] = v
}

// Row returns row i as a view into the backing slice.
func (r *ResultMatrix) Row(i int) []float32 {
	return r.data[i*r.cols : (i+1)*r.cols]
}

// Transpose returns a new matrix with rows and columns swapped.
func (r *ResultMatrix) Transpose() *ResultMatrix {
	out := &ResultMatrix{rows: r.cols, cols: r.rows, data: make([]float32, len(r.data))}
	for i := 0; i < r.rows; i++ {
		for j := 0; j < r.cols; j++ {
			out.data[j*r.rows+i] = r.data[i*r.cols+j]
		}
	}
	return out
}

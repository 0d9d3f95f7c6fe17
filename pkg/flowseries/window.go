package flowseries

// Window is an overlapping trailing-window view over a matrix: block i
// covers rows [i, i+w). Blocks share the matrix backing slice, so building
// and reading a window never copies flow data. All index arithmetic is
// bounds-checked; there is no raw stride aliasing.
type Window struct {
	m *Matrix
	w int
}

// Window returns the w-day rolling view of the matrix. w must be at least 1
// and no larger than the number of rows.
func (m *Matrix) Window(w int) Window {
	if w < 1 || w > m.rows {
		panic("flowseries: window length out of range")
	}
	return Window{m: m, w: w}
}

// Len returns the number of window positions, rows - w + 1.
func (v Window) Len() int { return v.m.rows - v.w + 1 }

// Block returns window position i as a w x cols matrix view.
func (v Window) Block(i int) *Matrix {
	return v.m.RowRange(i, i+v.w)
}

// Mean returns the per-series mean of every window position as a
// Len() x cols matrix. With w == 1 this is a copy of the source.
func (v Window) Mean() *Matrix {
	n, w, cols := v.Len(), v.w, v.m.cols
	out := New(n, cols)
	// running sums, one per series
	sums := make([]float64, cols)
	for t := 0; t < w; t++ {
		for s := 0; s < cols; s++ {
			sums[s] += v.m.data[t*cols+s]
		}
	}
	for i := 0; ; i++ {
		for s := 0; s < cols; s++ {
			out.data[i*cols+s] = sums[s] / float64(w)
		}
		if i == n-1 {
			break
		}
		for s := 0; s < cols; s++ {
			sums[s] += v.m.data[(i+w)*cols+s] - v.m.data[i*cols+s]
		}
	}
	return out
}

// Min returns the per-series minimum of every window position.
func (v Window) Min() *Matrix {
	return v.reduce(func(acc, x float64) bool { return x < acc })
}

// Max returns the per-series maximum of every window position.
func (v Window) Max() *Matrix {
	return v.reduce(func(acc, x float64) bool { return x > acc })
}

func (v Window) reduce(better func(acc, x float64) bool) *Matrix {
	n, w, cols := v.Len(), v.w, v.m.cols
	out := New(n, cols)
	for i := 0; i < n; i++ {
		for s := 0; s < cols; s++ {
			acc := v.m.data[i*cols+s]
			for t := i + 1; t < i+w; t++ {
				if x := v.m.data[t*cols+s]; better(acc, x) {
					acc = x
				}
			}
			out.data[i*cols+s] = acc
		}
	}
	return out
}

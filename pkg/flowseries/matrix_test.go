package flowseries

import (
	"math"
	"testing"
)

func TestFromRows(t *testing.T) {
	m := FromRows([][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	})
	if m.Rows() != 3 || m.Cols() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", m.Rows(), m.Cols())
	}
	if m.At(1, 0) != 3 || m.At(2, 1) != 6 {
		t.Errorf("unexpected values: At(1,0)=%v At(2,1)=%v", m.At(1, 0), m.At(2, 1))
	}
}

func TestFromSeries(t *testing.T) {
	m := FromSeries([]float64{1, 2, 3})
	if m.Rows() != 3 || m.Cols() != 1 {
		t.Fatalf("expected 3x1, got %dx%d", m.Rows(), m.Cols())
	}
	if m.At(2, 0) != 3 {
		t.Errorf("expected 3, got %v", m.At(2, 0))
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	m := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	back := m.Transpose().Transpose()
	if back.Rows() != m.Rows() || back.Cols() != m.Cols() {
		t.Fatalf("round trip changed shape to %dx%d", back.Rows(), back.Cols())
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if back.At(i, j) != m.At(i, j) {
				t.Errorf("round trip changed value at (%d,%d)", i, j)
			}
		}
	}
	tr := m.Transpose()
	if tr.At(2, 1) != 6 {
		t.Errorf("expected 6 at transposed (2,1), got %v", tr.At(2, 1))
	}
}

func TestSelectRows(t *testing.T) {
	m := FromRows([][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	})
	sub := m.SelectRows([]bool{false, true, true, false})
	if sub.Rows() != 2 || sub.Cols() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", sub.Rows(), sub.Cols())
	}
	if sub.At(0, 0) != 2 || sub.At(1, 1) != 30 {
		t.Errorf("unexpected selection: %v %v", sub.At(0, 0), sub.At(1, 1))
	}
	// the selection is a copy
	sub.Set(0, 0, 99)
	if m.At(1, 0) != 2 {
		t.Errorf("SelectRows must not alias the source")
	}
}

func TestRowRangeSharesStorage(t *testing.T) {
	m := FromSeries([]float64{1, 2, 3, 4})
	view := m.RowRange(1, 3)
	view.Set(0, 0, 99)
	if m.At(1, 0) != 99 {
		t.Errorf("RowRange must be a view over the source")
	}
}

func TestHasNaN(t *testing.T) {
	m := FromSeries([]float64{1, 2, 3})
	if m.HasNaN() {
		t.Errorf("no NaN expected")
	}
	m.Set(1, 0, math.NaN())
	if !m.HasNaN() {
		t.Errorf("NaN expected")
	}
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on out of bounds access")
		}
	}()
	m := FromSeries([]float64{1, 2})
	m.At(2, 0)
}

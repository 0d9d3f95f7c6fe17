package flowseries

import (
	"math"
	"testing"
)

func TestWindowMean(t *testing.T) {
	m := FromRows([][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
		{5, 50},
	})
	tests := []struct {
		name     string
		width    int
		wantLen  int
		wantAt00 float64
		wantAt01 float64
	}{
		{"width one is identity", 1, 5, 1, 10},
		{"width three", 3, 3, 2, 20},
		{"full width", 5, 1, 3, 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Window(tc.width).Mean()
			if got.Rows() != tc.wantLen {
				t.Fatalf("expected %d windows, got %d", tc.wantLen, got.Rows())
			}
			if math.Abs(got.At(0, 0)-tc.wantAt00) > 1e-12 {
				t.Errorf("expected %v at (0,0), got %v", tc.wantAt00, got.At(0, 0))
			}
			if math.Abs(got.At(0, 1)-tc.wantAt01) > 1e-12 {
				t.Errorf("expected %v at (0,1), got %v", tc.wantAt01, got.At(0, 1))
			}
		})
	}
}

func TestWindowMeanRunningSum(t *testing.T) {
	m := FromSeries([]float64{3, 1, 4, 1, 5, 9, 2, 6})
	got := m.Window(3).Mean()
	want := []float64{8.0 / 3, 2, 10.0 / 3, 5, 16.0 / 3, 17.0 / 3}
	for i, w := range want {
		if math.Abs(got.At(i, 0)-w) > 1e-12 {
			t.Errorf("window %d: expected %v, got %v", i, w, got.At(i, 0))
		}
	}
}

func TestWindowMinMax(t *testing.T) {
	m := FromSeries([]float64{3, 1, 4, 1, 5})
	mins := m.Window(3).Min()
	maxs := m.Window(3).Max()
	wantMin := []float64{1, 1, 1}
	wantMax := []float64{4, 4, 5}
	for i := range wantMin {
		if mins.At(i, 0) != wantMin[i] {
			t.Errorf("min window %d: expected %v, got %v", i, wantMin[i], mins.At(i, 0))
		}
		if maxs.At(i, 0) != wantMax[i] {
			t.Errorf("max window %d: expected %v, got %v", i, wantMax[i], maxs.At(i, 0))
		}
	}
}

func TestWindowBlockIsView(t *testing.T) {
	m := FromSeries([]float64{1, 2, 3, 4})
	block := m.Window(2).Block(1)
	if block.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", block.Rows())
	}
	block.Set(0, 0, 42)
	if m.At(1, 0) != 42 {
		t.Errorf("Block must be a view over the source")
	}
}

func TestWindowTooWidePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for window wider than the record")
		}
	}()
	FromSeries([]float64{1, 2}).Window(3)
}

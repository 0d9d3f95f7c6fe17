package characteristics

import (
	"testing"
	"time"
)

func TestMagnitudeConstantRecord(t *testing.T) {
	flows, dates, years := threeYearRecord(t, constantFlow(2))
	area := []float64{4}

	tests := []struct {
		name string
		fn   Characteristic
		want float64
	}{
		{"MA1 mean", MA1, 2},
		{"MA2 median", MA2, 2},
		{"MA3 variability", MA3, 0},
		{"MA5 skewness", MA5, 1},
		{"MA6 percentile ratio", MA6, 1},
		{"MA41 area normalised mean", MA41, 0.5},
		{"ML15 min over mean", ML15, 1},
		{"ML17 base flow index", ML17, 1},
		{"ML19 base flow percent", ML19, 100},
		{"ML22 area normalised min", ML22, 0.5},
		{"MH14 max over median", MH14, 1},
		{"MH20 area normalised max", MH20, 0.5},
		{"MH21 flood volume", MH21, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(flows, dates, years, area)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almost(got[0], tc.want, 1e-9) {
				t.Errorf("expected %v, got %v", tc.want, got[0])
			}
		})
	}
}

func TestMonthlyCharacteristics(t *testing.T) {
	// each day's flow is its calendar month number
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		return float64(d.Month())
	})
	area := []float64{1}

	tests := []struct {
		name string
		fn   Characteristic
		want float64
	}{
		{"MA12 january mean", MA12, 1},
		{"MA21 october mean", MA21, 10},
		{"MA23 december mean", MA23, 12},
		{"ML1 january minimum", ML1, 1},
		{"ML10 october minimum", ML10, 10},
		{"MH1 january maximum", MH1, 1},
		{"MH10 october maximum", MH10, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(flows, dates, years, area)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almost(got[0], tc.want, 1e-9) {
				t.Errorf("expected %v, got %v", tc.want, got[0])
			}
		})
	}
}

func TestML20ConstantRecord(t *testing.T) {
	flows, dates, years := threeYearRecord(t, constantFlow(3))
	got, err := ML20(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 219 five-day blocks cover 1095 of the 1096 days
	want := 1095.0 / 1096.0
	if !almost(got[0], want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got[0])
	}
}

func TestMA42AnnualSpread(t *testing.T) {
	// flow depends on the water year: 2, 4, 6 for the three years
	starts := []time.Time{
		time.Date(1996, time.October, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1997, time.October, 1, 0, 0, 0, 0, time.UTC),
	}
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		v := 2.0
		for _, s := range starts {
			if !d.Before(s) {
				v += 2
			}
		}
		return v
	})
	got, err := MA42(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// annual means 2, 4, 6: (max - min) / median = 4 / 4
	if !almost(got[0], 1, 1e-9) {
		t.Errorf("expected 1, got %v", got[0])
	}
}

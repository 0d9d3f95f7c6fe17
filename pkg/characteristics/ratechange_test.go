package characteristics

import (
	"math"
	"testing"
	"time"
)

func TestRiseAndFallRates(t *testing.T) {
	// sawtooth alternating 1, 2, 1, 2, ...: every rise and fall is 1
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		if d.YearDay()%2 == 0 {
			return 2
		}
		return 1
	})
	area := []float64{1}

	ra1, err := RA1(flows, dates, years, area)
	if err != nil {
		t.Fatalf("RA1: %v", err)
	}
	if !almost(ra1[0], 1, 1e-9) {
		t.Errorf("RA1: expected 1, got %v", ra1[0])
	}

	ra3, err := RA3(flows, dates, years, area)
	if err != nil {
		t.Fatalf("RA3: %v", err)
	}
	if !almost(ra3[0], 1, 1e-9) {
		t.Errorf("RA3: expected 1, got %v", ra3[0])
	}

	ra2, err := RA2(flows, dates, years, area)
	if err != nil {
		t.Fatalf("RA2: %v", err)
	}
	if !almost(ra2[0], 0, 1e-9) {
		t.Errorf("RA2: identical rises must have zero variability, got %v", ra2[0])
	}

	ra6, err := RA6(flows, dates, years, area)
	if err != nil {
		t.Fatalf("RA6: %v", err)
	}
	if !almost(ra6[0], math.Log(2), 1e-9) {
		t.Errorf("RA6: expected ln 2, got %v", ra6[0])
	}

	ra7, err := RA7(flows, dates, years, area)
	if err != nil {
		t.Fatalf("RA7: %v", err)
	}
	if !almost(ra7[0], math.Log(2), 1e-9) {
		t.Errorf("RA7: expected ln 2, got %v", ra7[0])
	}
}

func TestRA5RiseRatio(t *testing.T) {
	// strictly rising record: every day but the first is a rise day
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		return float64(d.Unix())
	})
	got, err := RA5(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 1095.0 / 1096.0
	if !almost(got[0], want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got[0])
	}
}

func TestRA8MonotonicHasNoReversals(t *testing.T) {
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		return float64(d.Unix())
	})
	got, err := RA8(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 0 {
		t.Errorf("expected 0 reversals, got %v", got[0])
	}
}

func TestRA8FlatRecordFails(t *testing.T) {
	flows, dates, years := threeYearRecord(t, constantFlow(2))
	_, err := RA8(flows, dates, years, []float64{1})
	if err == nil {
		t.Fatalf("expected an error for a flat record")
	}
}

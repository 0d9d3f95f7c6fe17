package characteristics

import (
	"testing"
	"time"
)

func TestTA1ConstantRecordIsFullyConstant(t *testing.T) {
	flows, dates, years := threeYearRecord(t, constantFlow(2))
	got, err := TA1(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// every day falls in the same flow class, entropy zero
	if !almost(got[0], 1, 1e-9) {
		t.Errorf("expected constancy 1, got %v", got[0])
	}
}

func TestTA1TwoEqualClasses(t *testing.T) {
	// half the year well below the mean, half well above: two classes in
	// equal shares give entropy log10(2)
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		if d.Month() >= time.April && d.Month() <= time.September {
			return 1000
		}
		return 10
	})
	got, err := TA1(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] <= 0 || got[0] >= 1 {
		t.Errorf("expected constancy strictly between 0 and 1, got %v", got[0])
	}
}

func TestTL1FixedMinimumDay(t *testing.T) {
	// the annual minimum always falls on 15 January (Julian day 15)
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		if d.Month() == time.January && d.Day() == 15 {
			return 1
		}
		return 10
	})
	got, err := TL1(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 15 {
		t.Errorf("expected day 15, got %v", got[0])
	}
}

func TestTL1LateYearMinimum(t *testing.T) {
	// minimum on 1 December (Julian day 335) each year: the circular mean
	// must not collapse across the calendar year boundary
	flows, dates, years := threeYearRecord(t, func(d time.Time) float64 {
		if d.Month() == time.December && d.Day() == 1 {
			return 1
		}
		return 10
	})
	got, err := TL1(flows, dates, years, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 335 {
		t.Errorf("expected day 335, got %v", got[0])
	}
}

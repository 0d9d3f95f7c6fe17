package characteristics

import (
	"math"
	"testing"
	"time"

	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// threeYearRecord builds a daily record from 1 October 1995 to
// 30 September 1998 (three complete water years, 1096 days) with flows
// produced per date, and segments it.
func threeYearRecord(t *testing.T, flow func(d time.Time) float64) (*flowseries.Matrix, []time.Time, []hydroyear.Year) {
	t.Helper()
	start := time.Date(1995, time.October, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 1096)
	values := make([]float64, 1096)
	for i := range dates {
		d := start.AddDate(0, 0, i)
		dates[i] = d
		values[i] = flow(d)
	}
	flows := flowseries.FromSeries(values)
	set, err := hydroyear.Segment(dates, flows, hydroyear.DefaultAnchor, nil)
	if err != nil {
		t.Fatalf("segmenting fixture: %v", err)
	}
	return set.Flows, set.Dates, set.Years
}

func constantFlow(v float64) func(time.Time) float64 {
	return func(time.Time) float64 { return v }
}

func almost(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestPercentile(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"median of even list", 50, 2.5},
		{"lower quartile", 25, 1.75},
		{"upper quartile", 75, 3.25},
		{"minimum", 0, 1},
		{"maximum", 100, 4},
		{"interpolated", 90, 3.7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := percentile(xs, tc.p)
			if !almost(got, tc.want, 1e-12) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPercentileSingleValue(t *testing.T) {
	if got := percentile([]float64{7}, 90); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestMedianOddList(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
}

func TestStdSampAndPop(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := stdPop(xs); !almost(got, 2, 1e-12) {
		t.Errorf("population std: expected 2, got %v", got)
	}
	if got := stdSamp(xs); !almost(got, math.Sqrt(32.0/7), 1e-12) {
		t.Errorf("sample std: expected %v, got %v", math.Sqrt(32.0/7), got)
	}
}

func TestNanAwareReductions(t *testing.T) {
	xs := []float64{1, math.NaN(), 3}
	if got := nanMean(xs); got != 2 {
		t.Errorf("nanMean: expected 2, got %v", got)
	}
	if got := nanMedian(xs); got != 2 {
		t.Errorf("nanMedian: expected 2, got %v", got)
	}
	if !math.IsNaN(nanMean([]float64{math.NaN()})) {
		t.Errorf("nanMean of all-NaN must be NaN")
	}
}

func TestLog10Flow(t *testing.T) {
	if got := log10Flow(100); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := log10Flow(0); !almost(got, -2, 1e-12) {
		t.Errorf("zero flow must be floored at 0.01, got %v", got)
	}
}

func TestInterpolateGaps(t *testing.T) {
	xs := []float64{1, math.NaN(), math.NaN(), 4, 5}
	interpolateGaps(xs)
	want := []float64{1, 2, 3, 4, 5}
	for i := range want {
		if !almost(xs[i], want[i], 1e-12) {
			t.Errorf("index %d: expected %v, got %v", i, want[i], xs[i])
		}
	}
}

func TestGroupByYearMonth(t *testing.T) {
	start := time.Date(1995, time.December, 30, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 5)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	groups := groupByYearMonth(dates)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].year != 1995 || groups[0].month != time.December || len(groups[0].rows) != 2 {
		t.Errorf("unexpected first group %v", groups[0])
	}
	if groups[1].year != 1996 || groups[1].month != time.January || len(groups[1].rows) != 3 {
		t.Errorf("unexpected second group %v", groups[1])
	}
}

package characteristics

import (
	"math"
	"time"

	"github.com/hydrostats/eflow/pkg/events"
	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// Rate of change characteristics describe how quickly flows rise and
// fall from one day to the next.

// rises returns the positive day-to-day flow changes of one series.
func rises(col []float64) []float64 {
	var out []float64
	for t := 1; t < len(col); t++ {
		if d := col[t] - col[t-1]; d > 0 {
			out = append(out, d)
		}
	}
	return out
}

// falls returns the magnitudes of the negative day-to-day flow changes
// of one series.
func falls(col []float64) []float64 {
	var out []float64
	for t := 1; t < len(col); t++ {
		if d := col[t] - col[t-1]; d < 0 {
			out = append(out, -d)
		}
	}
	return out
}

// RA1 is the average rise rate.
func RA1(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		out[s] = nanMean(rises(flows.Col(s)))
	}
	return out, nil
}

// RA2 is the variability in rise rate, in percent.
func RA2(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		r := rises(flows.Col(s))
		out[s] = nanStdSamp(r) * 100 / nanMean(r)
	}
	return out, nil
}

// RA3 is the average fall rate.
func RA3(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		out[s] = nanMean(falls(flows.Col(s)))
	}
	return out, nil
}

// RA4 is the variability in fall rate, in percent.
func RA4(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		f := falls(flows.Col(s))
		out[s] = nanStdSamp(f) * 100 / nanMean(f)
	}
	return out, nil
}

// RA5 is the ratio of days with a flow rise over the record length.
func RA5(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		col := flows.Col(s)
		n := 0
		for t := 1; t < len(col); t++ {
			if col[t] > col[t-1] {
				n++
			}
		}
		out[s] = float64(n) / float64(flows.Rows())
	}
	return out, nil
}

// logChanges returns the day-to-day changes in natural log flow, with
// zero flows floored at 0.01, keeping only changes matching keep.
func logChanges(col []float64, keep func(d float64) bool) []float64 {
	var out []float64
	prev := col[0]
	if prev == 0 {
		prev = 0.01
	}
	prev = math.Log(prev)
	for t := 1; t < len(col); t++ {
		v := col[t]
		if v == 0 {
			v = 0.01
		}
		lv := math.Log(v)
		if d := lv - prev; keep(d) {
			out = append(out, math.Abs(d))
		}
		prev = lv
	}
	return out
}

// RA6 is the median rate of flow rise on natural log flows.
func RA6(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		out[s] = nanMedian(logChanges(flows.Col(s), func(d float64) bool { return d > 0 }))
	}
	return out, nil
}

// RA7 is the median rate of flow recession on natural log flows.
func RA7(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		out[s] = nanMedian(logChanges(flows.Col(s), func(d float64) bool { return d < 0 }))
	}
	return out, nil
}

// annualReversals counts flow reversals in every hydrological year.
func annualReversals(flows *flowseries.Matrix, years []hydroyear.Year) (*flowseries.Matrix, error) {
	info := flowseries.New(len(years), flows.Cols())
	for hy, y := range years {
		counts, err := events.CountReversals(flows.SelectRows(y.Mask))
		if err != nil {
			return nil, err
		}
		for s, v := range counts {
			info.Set(hy, s, v)
		}
	}
	return info, nil
}

// RA8 is the mean annual number of flow reversals.
func RA8(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info, err := annualReversals(flows, years)
	if err != nil {
		return nil, err
	}
	return colReduce(info, mean), nil
}

// RA9 is the variability in the annual number of flow reversals, in
// percent.
func RA9(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info, err := annualReversals(flows, years)
	if err != nil {
		return nil, err
	}
	return colReduce(info, cvSamp), nil
}

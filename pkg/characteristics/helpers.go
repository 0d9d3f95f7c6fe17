package characteristics

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// areaAt broadcasts a drainage area slice over series.
func areaAt(area []float64, s int) float64 {
	if len(area) == 1 {
		return area[0]
	}
	return area[s]
}

// colReduce applies a reduction to every series column.
func colReduce(m *flowseries.Matrix, reduce func([]float64) float64) []float64 {
	out := make([]float64, m.Cols())
	for s := 0; s < m.Cols(); s++ {
		out[s] = reduce(m.Col(s))
	}
	return out
}

// yearReduce applies a per-series reduction to every hydrological year and
// returns a years x series matrix of the results.
func yearReduce(flows *flowseries.Matrix, years []hydroyear.Year, reduce func([]float64) float64) *flowseries.Matrix {
	out := flowseries.New(len(years), flows.Cols())
	for y, hy := range years {
		sub := flows.SelectRows(hy.Mask)
		for s := 0; s < flows.Cols(); s++ {
			out.Set(y, s, reduce(sub.Col(s)))
		}
	}
	return out
}

// yearVectors applies a vector-valued per-year computation and returns a
// years x series matrix.
func yearVectors(flows *flowseries.Matrix, years []hydroyear.Year, compute func(sub *flowseries.Matrix) []float64) *flowseries.Matrix {
	out := flowseries.New(len(years), flows.Cols())
	for y, hy := range years {
		vals := compute(flows.SelectRows(hy.Mask))
		for s, v := range vals {
			out.Set(y, s, v)
		}
	}
	return out
}

func mean(xs []float64) float64 { return stat.Mean(xs, nil) }

// stdSamp is the sample standard deviation (n-1 denominator).
func stdSamp(xs []float64) float64 { return stat.StdDev(xs, nil) }

// stdPop is the population standard deviation (n denominator).
func stdPop(xs []float64) float64 { return stat.PopStdDev(xs, nil) }

func minOf(xs []float64) float64 { return floats.Min(xs) }
func maxOf(xs []float64) float64 { return floats.Max(xs) }
func sum(xs []float64) float64   { return floats.Sum(xs) }

// percentile computes the p-th percentile (0-100) with linear
// interpolation between order statistics, matching the definition used
// throughout the characteristic literature (R type 7).
func percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0]
	}
	idx := p / 100 * float64(n-1)
	lower := int(idx)
	if lower >= n-1 {
		return sorted[n-1]
	}
	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

func median(xs []float64) float64 { return percentile(xs, 50) }

// cv returns the coefficient of variation in percent.
func cvSamp(xs []float64) float64 { return stdSamp(xs) * 100 / mean(xs) }
func cvPop(xs []float64) float64  { return stdPop(xs) * 100 / mean(xs) }

// dropNaN returns the non-NaN values of xs.
func dropNaN(xs []float64) []float64 {
	out := xs[:0:0]
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func nanMean(xs []float64) float64 {
	kept := dropNaN(xs)
	if len(kept) == 0 {
		return math.NaN()
	}
	return mean(kept)
}

func nanMedian(xs []float64) float64 {
	kept := dropNaN(xs)
	if len(kept) == 0 {
		return math.NaN()
	}
	return median(kept)
}

func nanStdSamp(xs []float64) float64 {
	kept := dropNaN(xs)
	if len(kept) < 2 {
		return math.NaN()
	}
	return stdSamp(kept)
}

// log10Flow takes the decimal log of a flow value, substituting 0.01 for
// zero so dry days stay finite.
func log10Flow(v float64) float64 {
	if v == 0 {
		v = 0.01
	}
	return math.Log10(v)
}

// monthGroup is one (year, month) block of consecutive day indices.
type monthGroup struct {
	year  int
	month time.Month
	rows  []int
}

// groupByYearMonth splits the date axis into (year, month) blocks in
// chronological order.
func groupByYearMonth(dates []time.Time) []monthGroup {
	var groups []monthGroup
	for i, d := range dates {
		y, m := d.Year(), d.Month()
		if len(groups) == 0 || groups[len(groups)-1].year != y || groups[len(groups)-1].month != m {
			groups = append(groups, monthGroup{year: y, month: m})
		}
		g := &groups[len(groups)-1]
		g.rows = append(g.rows, i)
	}
	return groups
}

// monthlyReduce reduces every (year, month) block per series and returns
// the groups alongside a groups x series matrix of reduced values.
func monthlyReduce(flows *flowseries.Matrix, dates []time.Time, reduce func([]float64) float64) ([]monthGroup, *flowseries.Matrix) {
	groups := groupByYearMonth(dates)
	out := flowseries.New(len(groups), flows.Cols())
	col := make([]float64, 0, 31)
	for g, grp := range groups {
		for s := 0; s < flows.Cols(); s++ {
			col = col[:0]
			for _, t := range grp.rows {
				col = append(col, flows.At(t, s))
			}
			out.Set(g, s, reduce(col))
		}
	}
	return groups, out
}

// calendarMonthMean averages the per-(year,month) reductions of one
// calendar month over all years.
func calendarMonthMean(groups []monthGroup, vals *flowseries.Matrix, month time.Month, s int) float64 {
	sum, n := 0.0, 0
	for g, grp := range groups {
		if grp.month == month {
			sum += vals.At(g, s)
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

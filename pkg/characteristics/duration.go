package characteristics

import (
	"time"

	"github.com/hydrostats/eflow/pkg/events"
	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// Duration characteristics look at sustained low or high flow
// conditions through 30-day moving averages and spell lengths.

// annual30Day reduces the 30-day moving average of the whole record per
// hydrological year. The moving average has 29 fewer values than the
// record, so the first year keeps 14 fewer windows than days and the
// last year absorbs the remaining shortfall.
func annual30Day(flows *flowseries.Matrix, years []hydroyear.Year, reduce func([]float64) float64) *flowseries.Matrix {
	roll := flows.Window(30).Mean()
	info := flowseries.New(len(years), flows.Cols())
	i := 0
	for hy, y := range years {
		lo, hi := i, i+y.Days
		if hy == 0 {
			hi = y.Days - 14
		}
		if hi > roll.Rows() {
			hi = roll.Rows()
		}
		sub := roll.RowRange(lo, hi)
		for s := 0; s < flows.Cols(); s++ {
			info.Set(hy, s, reduce(sub.Col(s)))
		}
		i = hi
	}
	return info
}

// DL9 is the variability in the annual minimum 30-day average flow, in
// percent.
func DL9(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := annual30Day(flows, years, minOf)
	return colReduce(info, cvPop), nil
}

// DH4 is the mean annual maximum 30-day average flow.
func DH4(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := annual30Day(flows, years, maxOf)
	return colReduce(info, mean), nil
}

// DH13 is the mean annual maximum 30-day average flow normalised by the
// record median.
func DH13(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := annual30Day(flows, years, maxOf)
	out := colReduce(info, mean)
	med := colReduce(flows, median)
	for s := range out {
		out[s] /= med[s]
	}
	return out, nil
}

// DH16 is the variability in the average duration of high flow spells
// above the record 75th percentile, in percent.
func DH16(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 75) })
	info := yearVectors(flows, years, func(sub *flowseries.Matrix) []float64 {
		return events.AvgDuration(sub, thr, events.Above)
	})
	return colReduce(info, cvPop), nil
}

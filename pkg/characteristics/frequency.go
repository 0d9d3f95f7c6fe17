package characteristics

import (
	"math"
	"time"

	"github.com/hydrostats/eflow/pkg/events"
	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// Frequency characteristics count flow pulses: spells below a low flow
// threshold (FL) or above a high flow threshold (FH). Thresholds are
// always derived from the whole record, spells are counted per
// hydrological year.

// annualEventCounts counts threshold events in every hydrological year
// and returns a years x series matrix.
func annualEventCounts(flows *flowseries.Matrix, years []hydroyear.Year, threshold []float64, dir events.Direction) *flowseries.Matrix {
	return yearVectors(flows, years, func(sub *flowseries.Matrix) []float64 {
		return events.CountEvents(sub, threshold, dir)
	})
}

// recordThreshold derives a per-series threshold from the whole record.
func recordThreshold(flows *flowseries.Matrix, derive func([]float64) float64) []float64 {
	return colReduce(flows, derive)
}

// maskNonPositive replaces values at or below zero with NaN so that
// years without any event drop out of the aggregation.
func maskNonPositive(info *flowseries.Matrix) {
	for y := 0; y < info.Rows(); y++ {
		for s := 0; s < info.Cols(); s++ {
			if info.At(y, s) <= 0 {
				info.Set(y, s, math.NaN())
			}
		}
	}
}

// FL1 is the mean annual count of low flow pulses below the record 25th
// percentile.
func FL1(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 25) })
	info := annualEventCounts(flows, years, thr, events.Below)
	return colReduce(info, mean), nil
}

// FL2 is the variability in the annual low flow pulse count, in percent.
func FL2(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 25) })
	info := annualEventCounts(flows, years, thr, events.Below)
	return colReduce(info, cvPop), nil
}

// FL3 is the mean annual count of low flow pulses below 5% of the record
// mean flow, over the years with at least one pulse.
func FL3(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return mean(xs) * 0.05 })
	info := annualEventCounts(flows, years, thr, events.Below)
	maskNonPositive(info)
	return colReduce(info, nanMean), nil
}

// FH1 is the mean annual count of high flow pulses above the record 75th
// percentile.
func FH1(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 75) })
	info := annualEventCounts(flows, years, thr, events.Above)
	return colReduce(info, mean), nil
}

// FH2 is the variability in the annual high flow pulse count, in percent.
func FH2(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 75) })
	info := annualEventCounts(flows, years, thr, events.Above)
	return colReduce(info, cvPop), nil
}

// floodDays builds the flood day-count characteristics (FH3, FH4): the
// mean annual number of days above a multiple of the record median.
func floodDays(factor float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		thr := recordThreshold(flows, median)
		for s := range thr {
			thr[s] *= factor
		}
		info := yearVectors(flows, years, func(sub *flowseries.Matrix) []float64 {
			return events.CountDays(sub, thr, events.Above)
		})
		return colReduce(info, mean), nil
	}
}

// FH5 is the mean annual count of events above the record median flow,
// over the years with at least one event.
func FH5(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, median)
	info := annualEventCounts(flows, years, thr, events.Above)
	for y := 0; y < info.Rows(); y++ {
		for s := 0; s < info.Cols(); s++ {
			if info.At(y, s) == 0 {
				info.Set(y, s, math.NaN())
			}
		}
	}
	return colReduce(info, nanMean), nil
}

// floodFrequency builds the flood event-count characteristics (FH6,
// FH7): the mean annual number of events above a multiple of the record
// median.
func floodFrequency(factor float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		thr := recordThreshold(flows, median)
		for s := range thr {
			thr[s] *= factor
		}
		info := annualEventCounts(flows, years, thr, events.Above)
		return colReduce(info, mean), nil
	}
}

// FH8 is the mean annual count of events above the record 75th percentile.
func FH8(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 75) })
	info := annualEventCounts(flows, years, thr, events.Above)
	return colReduce(info, mean), nil
}

// FH9 is the mean annual count of events above the record 25th percentile.
func FH9(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	thr := recordThreshold(flows, func(xs []float64) float64 { return percentile(xs, 25) })
	info := annualEventCounts(flows, years, thr, events.Above)
	return colReduce(info, mean), nil
}

// FH10 is the mean annual count of events above the median of the annual
// minima, over the years with at least one event.
func FH10(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	mins := yearReduce(flows, years, minOf)
	thr := colReduce(mins, median)
	info := annualEventCounts(flows, years, thr, events.Above)
	maskNonPositive(info)
	return colReduce(info, nanMean), nil
}

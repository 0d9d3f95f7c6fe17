package characteristics

import (
	"math"
	"time"

	"github.com/hydrostats/eflow/pkg/events"
	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// Magnitude characteristics describe the size of flows: averages (MA),
// low flows (ML) and high flows (MH).

// MA1 is the mean of the entire record.
func MA1(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	return colReduce(flows, mean), nil
}

// MA2 is the median of the entire record.
func MA2(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	return colReduce(flows, median), nil
}

// MA3 is the mean of the annual coefficients of variation, in percent.
func MA3(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return stdSamp(xs) / mean(xs)
	})
	out := colReduce(info, mean)
	for s := range out {
		out[s] *= 100
	}
	return out, nil
}

// MA4 is the variability across the 5th to 95th log10 flow percentiles.
func MA4(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := 0; s < flows.Cols(); s++ {
		col := flows.Col(s)
		for i, v := range col {
			col[i] = log10Flow(v)
		}
		perc := make([]float64, 0, 19)
		for p := 5.0; p <= 95; p += 5 {
			perc = append(perc, percentile(col, p))
		}
		out[s] = stdSamp(perc) * 100 / mean(perc)
	}
	return out, nil
}

// MA5 is the mean over the median of the entire record.
func MA5(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := 0; s < flows.Cols(); s++ {
		col := flows.Col(s)
		out[s] = mean(col) / median(col)
	}
	return out, nil
}

// percentileRatio builds a characteristic dividing the pHigh percentile
// by the pLow percentile of the entire record (MA6 to MA8).
func percentileRatio(pHigh, pLow float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		out := make([]float64, flows.Cols())
		for s := 0; s < flows.Cols(); s++ {
			col := flows.Col(s)
			out[s] = percentile(col, pHigh) / percentile(col, pLow)
		}
		return out, nil
	}
}

// logPercentileSpread builds a characteristic taking the spread between
// two log10 flow percentiles over the log10 record median (MA9 to MA11).
func logPercentileSpread(pHigh, pLow float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		out := make([]float64, flows.Cols())
		for s := 0; s < flows.Cols(); s++ {
			col := flows.Col(s)
			med := math.Log10(median(col))
			for i, v := range col {
				col[i] = log10Flow(v)
			}
			out[s] = (percentile(col, pHigh) - percentile(col, pLow)) / med
		}
		return out, nil
	}
}

// MonthlyMean builds the mean-of-month characteristic for one calendar
// month (MA12 to MA23). All days of that month across years are averaged
// together.
func MonthlyMean(month time.Month) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		out := make([]float64, flows.Cols())
		for s := 0; s < flows.Cols(); s++ {
			sum, n := 0.0, 0
			for t, d := range dates {
				if d.Month() == month {
					sum += flows.At(t, s)
					n++
				}
			}
			if n == 0 {
				out[s] = math.NaN()
			} else {
				out[s] = sum / float64(n)
			}
		}
		return out, nil
	}
}

// MonthlyCV builds the flow-variability characteristic for one calendar
// month (MA24 to MA35): the coefficient of variation of each (year,
// month) block, averaged over the years, in percent.
func MonthlyCV(month time.Month) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		groups, cv := monthlyReduce(flows, dates, func(xs []float64) float64 {
			return stdSamp(xs) / mean(xs)
		})
		out := make([]float64, flows.Cols())
		for s := range out {
			out[s] = calendarMonthMean(groups, cv, month, s) * 100
		}
		return out, nil
	}
}

// monthlyMeanSpread builds the monthly-flow skewness and variability
// characteristics (MA36 to MA40): the (year, month) means aggregated by
// the given reduction over all blocks.
func monthlyMeanSpread(aggregate func(xs []float64) float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		_, means := monthlyReduce(flows, dates, mean)
		return colReduce(means, aggregate), nil
	}
}

// MA41 is the mean annual daily flow normalised by drainage area.
func MA41(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, mean)
	out := colReduce(info, mean)
	for s := range out {
		out[s] /= areaAt(area, s)
	}
	return out, nil
}

// annualMeanSpread builds the annual-flow skewness characteristics
// (MA42 to MA45): per-year means aggregated by the given reduction.
func annualMeanSpread(aggregate func(xs []float64) float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		info := yearReduce(flows, years, mean)
		return colReduce(info, aggregate), nil
	}
}

// MonthlyMin builds the minimum-of-month characteristic for one calendar
// month (ML1 to ML12): the (year, month) minima averaged over the years.
func MonthlyMin(month time.Month) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		groups, mins := monthlyReduce(flows, dates, minOf)
		out := make([]float64, flows.Cols())
		for s := range out {
			out[s] = calendarMonthMean(groups, mins, month, s)
		}
		return out, nil
	}
}

// ML13 is the variability in minimum monthly flow, in percent.
func ML13(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	_, mins := monthlyReduce(flows, dates, minOf)
	return colReduce(mins, cvSamp), nil
}

// ML14 is the mean of the annual minima normalised by the annual medians.
func ML14(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return minOf(xs) / median(xs)
	})
	return colReduce(info, mean), nil
}

// ML15 is the mean of the annual minima normalised by the annual means.
func ML15(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return minOf(xs) / mean(xs)
	})
	return colReduce(info, mean), nil
}

// ML16 is the median of the annual minima normalised by the annual medians.
func ML16(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return minOf(xs) / median(xs)
	})
	return colReduce(info, median), nil
}

// baseFlowIndex is the minimum 7-day rolling mean over the mean of the
// year, per series.
func baseFlowIndex(sub *flowseries.Matrix) []float64 {
	rolled := sub.Window(7).Mean()
	out := make([]float64, sub.Cols())
	for s := 0; s < sub.Cols(); s++ {
		out[s] = minOf(rolled.Col(s)) / mean(sub.Col(s))
	}
	return out
}

// ML17 is the base flow index averaged over the hydrological years.
func ML17(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearVectors(flows, years, baseFlowIndex)
	return colReduce(info, mean), nil
}

// ML18 is the variability in the base flow index, in percent.
func ML18(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearVectors(flows, years, baseFlowIndex)
	return colReduce(info, cvSamp), nil
}

// ML19 is the mean ratio of annual minimum to annual mean flow, in percent.
func ML19(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return minOf(xs) / mean(xs)
	})
	out := colReduce(info, mean)
	for s := range out {
		out[s] *= 100
	}
	return out, nil
}

// ML20 is the base flow estimated from 5-day block minima: a block
// minimum becomes a base flow turning point when 90% of it stays below
// the minimum of its neighbouring blocks, and the gaps are filled by
// linear interpolation. The result is the base flow volume over the
// total flow volume.
func ML20(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	nb := flows.Rows() / 5
	cols := flows.Cols()

	blocksMin := flowseries.New(nb, cols)
	for b := 0; b < nb; b++ {
		for s := 0; s < cols; s++ {
			m := flows.At(5*b, s)
			for t := 5*b + 1; t < 5*(b+1); t++ {
				if v := flows.At(t, s); v < m {
					m = v
				}
			}
			blocksMin.Set(b, s, m)
		}
	}
	neighbourMin := blocksMin.Window(3).Min()

	baseFlow := flowseries.New(nb, cols)
	for s := 0; s < cols; s++ {
		baseFlow.Set(0, s, blocksMin.At(0, s))
		baseFlow.Set(nb-1, s, blocksMin.At(nb-1, s))
		for b := 1; b < nb-1; b++ {
			if blocksMin.At(b, s)*0.90 < neighbourMin.At(b-1, s) {
				baseFlow.Set(b, s, blocksMin.At(b, s))
			} else {
				baseFlow.Set(b, s, math.NaN())
			}
		}
	}

	out := make([]float64, cols)
	for s := 0; s < cols; s++ {
		bf := baseFlow.Col(s)
		interpolateGaps(bf)
		out[s] = sum(bf) * 5 / sum(flows.Col(s))
	}
	return out, nil
}

// interpolateGaps fills NaN runs in xs by linear interpolation between
// the surrounding values. The first and last elements must be set.
func interpolateGaps(xs []float64) {
	last := 0
	for i := 1; i < len(xs); i++ {
		if math.IsNaN(xs[i]) {
			continue
		}
		if gap := i - last; gap > 1 {
			step := (xs[i] - xs[last]) / float64(gap)
			for k := last + 1; k < i; k++ {
				xs[k] = xs[last] + step*float64(k-last)
			}
		}
		last = i
	}
}

// ML21 is the variability in annual minimum daily flow, in percent.
func ML21(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, minOf)
	return colReduce(info, cvSamp), nil
}

// ML22 is the mean annual minimum daily flow normalised by drainage area.
func ML22(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, minOf)
	out := colReduce(info, mean)
	for s := range out {
		out[s] /= areaAt(area, s)
	}
	return out, nil
}

// MonthlyMax builds the maximum-of-month characteristic for one calendar
// month (MH1 to MH12): the (year, month) maxima averaged over the years.
func MonthlyMax(month time.Month) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		groups, maxs := monthlyReduce(flows, dates, maxOf)
		out := make([]float64, flows.Cols())
		for s := range out {
			out[s] = calendarMonthMean(groups, maxs, month, s)
		}
		return out, nil
	}
}

// MH13 is the variability in maximum monthly flow, in percent.
func MH13(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	_, maxs := monthlyReduce(flows, dates, maxOf)
	return colReduce(maxs, cvSamp), nil
}

// MH14 is the median of the annual maxima normalised by the annual medians.
func MH14(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return maxOf(xs) / median(xs)
	})
	return colReduce(info, median), nil
}

// exceedanceRatio builds the high flow exceedance characteristics (MH15
// to MH17): the p-th percentile over the record median.
func exceedanceRatio(p float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		out := make([]float64, flows.Cols())
		for s := 0; s < flows.Cols(); s++ {
			col := flows.Col(s)
			out[s] = percentile(col, p) / median(col)
		}
		return out, nil
	}
}

// MH18 is the variability in the log10 annual maximum daily flow, in percent.
func MH18(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return log10Flow(maxOf(xs))
	})
	return colReduce(info, cvSamp), nil
}

// MH19 is the skewness in the log10 annual maximum daily flow.
func MH19(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, func(xs []float64) float64 {
		return log10Flow(maxOf(xs))
	})
	n := float64(len(years))
	out := make([]float64, flows.Cols())
	for s := 0; s < flows.Cols(); s++ {
		logf := info.Col(s)
		var s1, s2, s3 float64
		for _, v := range logf {
			s1 += v
			s2 += v * v
			s3 += v * v * v
		}
		sd := stdSamp(logf)
		out[s] = (n*n*s3 - 3*n*s2*s1 + 2*s1*s1*s1) / (n * (n - 1) * (n - 2) * sd * sd * sd)
	}
	return out, nil
}

// MH20 is the mean annual maximum daily flow normalised by drainage area.
func MH20(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	info := yearReduce(flows, years, maxOf)
	out := colReduce(info, mean)
	for s := range out {
		out[s] /= areaAt(area, s)
	}
	return out, nil
}

// floodVolume builds the flood volume characteristics (MH21 to MH23):
// the average event volume above a multiple of the record median,
// normalised by that median.
func floodVolume(factor float64) Characteristic {
	return func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		med := colReduce(flows, median)
		threshold := make([]float64, len(med))
		for s, m := range med {
			threshold[s] = factor * m
		}
		vol := events.AvgVolumeAbove(flows, threshold)
		for s := range vol {
			vol[s] /= med[s]
		}
		return vol, nil
	}
}

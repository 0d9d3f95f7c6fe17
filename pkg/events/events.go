// Package events detects threshold-crossing runs in daily flow series. An
// event is a maximal contiguous stretch of days where the flow stays above
// (or below) a per-series threshold; a run already in progress on the first
// day of the record counts as one event.
package events

import "github.com/hydrostats/eflow/pkg/flowseries"

// Direction selects which side of the threshold constitutes an event.
type Direction int

const (
	// Above counts days with flow strictly greater than the threshold.
	Above Direction = iota
	// Below counts days with flow strictly less than the threshold.
	Below
)

// threshold values are broadcast over series: a one-element slice applies
// to every column, otherwise one value per column is required.
func thresholdAt(threshold []float64, cols, s int) float64 {
	if len(threshold) == 1 {
		return threshold[0]
	}
	if len(threshold) != cols {
		panic("events: threshold length must be 1 or the number of series")
	}
	return threshold[s]
}

func exceeds(v, thr float64, dir Direction) bool {
	if dir == Above {
		return v > thr
	}
	return v < thr
}

// CountEvents returns the number of threshold-crossing runs per series:
// the number of off-to-on transitions along time, plus one if the first
// day is already on (its rising edge precedes the record).
func CountEvents(m *flowseries.Matrix, threshold []float64, dir Direction) []float64 {
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, cols)
	for s := 0; s < cols; s++ {
		thr := thresholdAt(threshold, cols, s)
		prev := false
		for t := 0; t < rows; t++ {
			on := exceeds(m.At(t, s), thr, dir)
			if on && !prev {
				out[s]++
			}
			prev = on
		}
	}
	return out
}

// CountDays returns the total number of days per series on the event side
// of the threshold, regardless of how they group into runs.
func CountDays(m *flowseries.Matrix, threshold []float64, dir Direction) []float64 {
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, cols)
	for s := 0; s < cols; s++ {
		thr := thresholdAt(threshold, cols, s)
		for t := 0; t < rows; t++ {
			if exceeds(m.At(t, s), thr, dir) {
				out[s]++
			}
		}
	}
	return out
}

// AvgDuration returns the mean event length in days per series, zero for
// series with no events.
func AvgDuration(m *flowseries.Matrix, threshold []float64, dir Direction) []float64 {
	count := CountEvents(m, threshold, dir)
	days := CountDays(m, threshold, dir)
	out := make([]float64, len(count))
	for s := range out {
		if count[s] != 0 {
			out[s] = days[s] / count[s]
		}
	}
	return out
}

// AvgVolumeAbove returns the mean volume per event above the threshold:
// the sum of (flow - threshold) over event days, divided by the event
// count. Zero for series with no events.
func AvgVolumeAbove(m *flowseries.Matrix, threshold []float64) []float64 {
	rows, cols := m.Rows(), m.Cols()
	count := CountEvents(m, threshold, Above)
	out := make([]float64, cols)
	for s := 0; s < cols; s++ {
		if count[s] == 0 {
			continue
		}
		thr := thresholdAt(threshold, cols, s)
		sum := 0.0
		for t := 0; t < rows; t++ {
			if v := m.At(t, s); v > thr {
				sum += v - thr
			}
		}
		out[s] = sum / count[s]
	}
	return out
}

package events

import (
	"fmt"

	"github.com/hydrostats/eflow/pkg/flowseries"
)

// FlatSeriesError reports a series whose day-to-day differences are zero
// everywhere. Such a series carries no directional information, so its
// reversal count is undefined rather than zero.
type FlatSeriesError struct {
	Series int
}

func (e *FlatSeriesError) Error() string {
	return fmt.Sprintf("series %d is flat: reversal count is undefined", e.Series)
}

// CountReversals returns the number of changes in flow direction (rise to
// fall or fall to rise) per series.
//
// Days with zero difference carry no direction of their own and inherit
// the nearest preceding non-zero difference; zero differences at the very
// start of a series, with nothing before them, inherit the nearest
// following non-zero difference instead. The first detected run is not a
// reversal from anything, hence the minus one.
func CountReversals(m *flowseries.Matrix) ([]float64, error) {
	rows, cols := m.Rows(), m.Cols()
	if rows < 2 {
		return nil, fmt.Errorf("events: need at least 2 days to count reversals, have %d", rows)
	}
	out := make([]float64, cols)
	diff := make([]float64, rows-1)
	for s := 0; s < cols; s++ {
		for t := 0; t < rows-1; t++ {
			diff[t] = m.At(t+1, s) - m.At(t, s)
		}
		if err := resolveFlats(diff, s); err != nil {
			return nil, err
		}

		risingRuns, fallingRuns := 0.0, 0.0
		prevRise, prevFall := false, false
		for _, d := range diff {
			rise, fall := d > 0, d < 0
			if rise && !prevRise {
				risingRuns++
			}
			if fall && !prevFall {
				fallingRuns++
			}
			prevRise, prevFall = rise, fall
		}
		out[s] = risingRuns + fallingRuns - 1
	}
	return out, nil
}

// resolveFlats replaces zero differences in place: forward-fill from the
// last non-zero difference, then backward-fill any zeros left at the head.
func resolveFlats(diff []float64, series int) error {
	last := 0.0
	for t, d := range diff {
		if d != 0 {
			last = d
		} else if last != 0 {
			diff[t] = last
		}
	}
	if last == 0 {
		return &FlatSeriesError{Series: series}
	}
	// zeros remaining at the head precede every non-zero difference
	next := 0.0
	for t := len(diff) - 1; t >= 0; t-- {
		if diff[t] != 0 {
			next = diff[t]
		} else {
			diff[t] = next
		}
	}
	return nil
}

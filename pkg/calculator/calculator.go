// Package calculator applies streamflow characteristic functions to daily
// flow records. It validates and normalizes the inputs, segments the
// record into complete hydrological years, dispatches the requested
// characteristics, and assembles the results; a bounded worker pool fans
// the same computation out over many unrelated records.
package calculator

import (
	"fmt"
	"math"
	"time"

	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// Characteristic is a pure, stateless reduction of a segmented flow record
// to one value per series. Implementations must not mutate their inputs.
type Characteristic func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error)

// Options control how a record is segmented and oriented.
type Options struct {
	// Anchor is the hydrological year start; the zero value means
	// hydroyear.DefaultAnchor (1 October).
	Anchor hydroyear.Anchor
	// Years optionally restricts the calculation to these hydrological
	// years; nil means every complete year in the record.
	Years []int
	// Axis selects the orientation of the flow input and of the result:
	// 0 for time-major (the canonical layout), 1 for series-major.
	Axis int
}

func (o Options) anchor() hydroyear.Anchor {
	if o.Anchor.Day == 0 {
		return hydroyear.DefaultAnchor
	}
	return o.Anchor
}

// Calculate runs the characteristic functions over a flow record and
// returns a characteristics x series result matrix (its transpose when
// opts.Axis is 1). The drainage area is either a single value broadcast
// over all series or one value per series.
//
// Validation failures and characteristic failures are returned as typed
// errors; no partial results are produced.
func Calculate(fns []Characteristic, dates []time.Time, flows *flowseries.Matrix, area []float64, opts Options) (*ResultMatrix, error) {
	if len(fns) == 0 {
		return nil, &InputShapeError{Reason: "no characteristic functions requested"}
	}
	if opts.Axis != 0 && opts.Axis != 1 {
		return nil, &IndexDimensionError{Axis: opts.Axis}
	}
	if err := validateDates(dates); err != nil {
		return nil, err
	}

	// normalize to the canonical time-major orientation once, at the boundary
	if opts.Axis == 1 {
		flows = flows.Transpose()
	}
	if flows.Rows() != len(dates) {
		return nil, &InputShapeError{
			Reason: "flow rows do not match the date axis after orientation",
		}
	}
	if len(area) != 1 && len(area) != flows.Cols() {
		return nil, &InputShapeError{
			Reason: "drainage area must be a single value or one value per series",
		}
	}

	set, err := hydroyear.Segment(dates, flows, opts.anchor(), opts.Years)
	if err != nil {
		return nil, err
	}

	result := NewResultMatrix(len(fns), set.Flows.Cols())
	for i, fn := range fns {
		values, err := fn(set.Flows, set.Dates, set.Years, area)
		if err != nil {
			return nil, &CharacteristicError{Index: i, Err: err}
		}
		if len(values) != set.Flows.Cols() {
			return nil, &CharacteristicError{
				Index: i,
				Err:   fmt.Errorf("returned %d values for %d series", len(values), set.Flows.Cols()),
			}
		}
		for s, v := range values {
			if math.IsNaN(v) {
				return nil, &IncompleteResultError{Index: i, Series: s}
			}
			result.Set(i, s, float32(v))
		}
	}

	if opts.Axis == 1 {
		result = result.Transpose()
	}
	return result, nil
}

// Vector computes a single characteristic over a flow matrix and returns
// one value per series: the single-function convenience reshape over
// Calculate, with no separate branch in the dispatch itself.
func Vector(fn Characteristic, dates []time.Time, flows *flowseries.Matrix, area []float64, opts Options) ([]float64, error) {
	axis := opts.Axis
	if axis != 0 && axis != 1 {
		return nil, &IndexDimensionError{Axis: axis}
	}
	opts.Axis = 0
	if axis == 1 {
		flows = flows.Transpose()
	}
	result, err := Calculate([]Characteristic{fn}, dates, flows, area, opts)
	if err != nil {
		return nil, err
	}
	out := make([]float64, result.Cols())
	for s := range out {
		out[s] = float64(result.At(0, s))
	}
	return out, nil
}

// One computes a single characteristic over a single series.
func One(fn Characteristic, dates []time.Time, flow []float64, area float64, opts Options) (float64, error) {
	opts.Axis = 0
	result, err := Calculate([]Characteristic{fn}, dates, flowseries.FromSeries(flow), []float64{area}, opts)
	if err != nil {
		return math.NaN(), err
	}
	return float64(result.At(0, 0)), nil
}

// validateDates requires a non-empty, strictly increasing axis of
// midnight timestamps exactly one day apart.
func validateDates(dates []time.Time) error {
	if len(dates) == 0 {
		return &InputShapeError{Reason: "empty date axis"}
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return &InputShapeError{Reason: "dates are not strictly increasing"}
		}
		if dates[i].Sub(dates[i-1]) != 24*time.Hour {
			return &InputShapeError{Reason: "dates are not daily spaced"}
		}
	}
	return nil
}

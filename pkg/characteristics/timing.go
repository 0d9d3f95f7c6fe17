package characteristics

import (
	"math"
	"time"

	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// Timing characteristics locate flow conditions within the year.

// colwellClasses is the number of log flow classes in the Colwell matrix.
const colwellClasses = 11

// colwellBounds are the class bounds as fractions of the log mean flow.
var colwellBounds = [colwellClasses - 1]float64{0.10, 0.25, 0.50, 0.75, 1.00, 1.25, 1.50, 1.75, 2.00, 2.25}

// TA1 is the constancy of Colwell (1974): daily log flows are binned
// into 11 classes relative to the log mean flow, on a 365-day calendar
// with the 29th of February dropped, and the class distribution entropy
// is turned into a score between 0 and 1.
func TA1(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	cols := flows.Cols()
	out := make([]float64, cols)

	for s := 0; s < cols; s++ {
		logMean := math.Log10(mean(flows.Col(s)))

		var counts [colwellClasses]int
		total := 0
		for _, y := range years {
			day := 0
			for t, in := range y.Mask {
				if !in {
					continue
				}
				if y.Days == 366 && day == 151 {
					// 29th of February
					day++
					continue
				}
				v := log10Flow(flows.At(t, s))
				if v < colwellBounds[0]*logMean {
					counts[0]++
				}
				for c := 1; c < colwellClasses-1; c++ {
					if v >= colwellBounds[c-1]*logMean && v < colwellBounds[c]*logMean {
						counts[c]++
					}
				}
				if v >= colwellBounds[colwellClasses-2]*logMean {
					counts[colwellClasses-1]++
				}
				total++
				day++
			}
		}

		entropy := 0.0
		for _, n := range counts {
			if n == 0 {
				continue
			}
			p := float64(n) / float64(total)
			entropy -= p * math.Log10(p)
		}
		out[s] = 1 - entropy/math.Log10(colwellClasses)
	}
	return out, nil
}

// TL1 is the timing of the annual minimum flow: the Julian day of each
// year's minimum is averaged as an angle on a 365.25-day circle and
// converted back to a day of year.
func TL1(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	cols := flows.Cols()
	out := make([]float64, cols)

	for s := 0; s < cols; s++ {
		var sumCos, sumSin float64
		for _, y := range years {
			minVal := math.Inf(1)
			minDay := 0
			for t, in := range y.Mask {
				if !in {
					continue
				}
				if v := flows.At(t, s); v < minVal {
					minVal = v
					minDay = dates[t].YearDay()
				}
			}
			angle := float64(minDay) * 2 * math.Pi / 365.25
			sumCos += math.Cos(angle)
			sumSin += math.Sin(angle)
		}
		x := sumCos / float64(len(years))
		y := sumSin / float64(len(years))

		var deg float64
		switch {
		case x == 0 && y > 0:
			deg = 90
		case x == 0 && y < 0:
			deg = 270
		case x == 0:
			out[s] = math.NaN()
			continue
		default:
			deg = math.Atan(y/x) * 180 / math.Pi
			if x < 0 {
				deg += 180
			}
		}
		if deg < 0 {
			deg += 360
		}
		day := deg * 365.25 / 360
		if day == 0 {
			day = 365.25
		}
		out[s] = math.RoundToEven(day)
	}
	return out, nil
}

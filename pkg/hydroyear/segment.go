package hydroyear

import (
	"fmt"
	"math"
	"time"

	"github.com/hydrostats/eflow/pkg/flowseries"
)

// Year is one complete hydrological year inside a segmented record.
type Year struct {
	// Label is the calendar year the period starts in.
	Label int
	// Days is the calendar span of the year, 365 or 366.
	Days int
	// Mask marks the member days on the trimmed time axis.
	Mask []bool
}

// Set is a segmented record: the time axis and flows trimmed to complete
// hydrological years, plus one membership mask per year. A Set is built
// fresh per calculation and never mutated afterwards.
type Set struct {
	Dates []time.Time
	Flows *flowseries.Matrix
	Years []Year
}

// Masks returns the year masks as a years x time boolean matrix.
func (s *Set) Masks() [][]bool {
	out := make([][]bool, len(s.Years))
	for i, y := range s.Years {
		out[i] = y.Mask
	}
	return out
}

// Segment trims a daily record to complete hydrological years and builds
// one validated membership mask per year.
//
// With a nil or empty years list the whole record is used: the head is
// advanced to the first anchor starting a fully covered year and the tail
// pulled back to the last day of the last fully covered year. With an
// explicit list, the record is subset to the union of the requested year
// windows and each year is validated independently; the list may be
// non-contiguous.
//
// Dates must be strictly increasing midnight timestamps one day apart, and
// flows must have one row per date. Those preconditions are the caller's
// responsibility (the calculator validates them before segmenting).
func Segment(dates []time.Time, flows *flowseries.Matrix, anchor Anchor, years []int) (*Set, error) {
	if len(dates) == 0 {
		return nil, fmt.Errorf("hydroyear: empty record")
	}
	if flows.Rows() != len(dates) {
		return nil, fmt.Errorf("hydroyear: %d flow rows for %d dates", flows.Rows(), len(dates))
	}
	if len(years) == 0 {
		return segmentWhole(dates, flows, anchor)
	}
	return segmentExplicit(dates, flows, anchor, years)
}

func segmentWhole(dates []time.Time, flows *flowseries.Matrix, anchor Anchor) (*Set, error) {
	loc := dates[0].Location()
	first, last := dates[0], dates[len(dates)-1]

	head := anchor.Date(first.Year(), loc)
	if first.After(head) {
		head = anchor.Date(first.Year()+1, loc)
	}
	// latest year end (day before an anchor) covered by the record
	endYear := last.Year() + 1
	tail := anchor.Date(endYear, loc).AddDate(0, 0, -1)
	for tail.After(last) {
		endYear--
		tail = anchor.Date(endYear, loc).AddDate(0, 0, -1)
	}

	startLabel := head.Year()
	var labels []int
	for y := startLabel; !anchor.Date(y+1, loc).AddDate(0, 0, -1).After(tail); y++ {
		labels = append(labels, y)
	}
	if len(labels) == 0 {
		return nil, &IncompleteYearError{
			Year: startLabel,
			Want: spanDays(anchor.Date(startLabel, loc), anchor.Date(startLabel+1, loc).AddDate(0, 0, -1)),
			Got:  countBetween(dates, head, tail),
		}
	}

	keep := make([]bool, len(dates))
	for i, d := range dates {
		keep[i] = !d.Before(head) && !d.After(tail)
	}
	set := &Set{
		Dates: selectDates(dates, keep),
		Flows: flows.SelectRows(keep),
	}
	return buildMasks(set, anchor, labels, loc)
}

func segmentExplicit(dates []time.Time, flows *flowseries.Matrix, anchor Anchor, years []int) (*Set, error) {
	loc := dates[0].Location()

	keep := make([]bool, len(dates))
	for _, y := range years {
		start := anchor.Date(y, loc)
		end := anchor.Date(y+1, loc).AddDate(0, 0, -1)
		for i, d := range dates {
			if !d.Before(start) && !d.After(end) {
				keep[i] = true
			}
		}
	}
	set := &Set{
		Dates: selectDates(dates, keep),
		Flows: flows.SelectRows(keep),
	}
	return buildMasks(set, anchor, years, loc)
}

// buildMasks computes and validates one mask per requested label against
// the trimmed axis. Day counts come from calendar arithmetic over the
// concrete start and end dates, so leap years fall out of the date math.
func buildMasks(set *Set, anchor Anchor, labels []int, loc *time.Location) (*Set, error) {
	set.Years = make([]Year, 0, len(labels))
	for _, label := range labels {
		start := anchor.Date(label, loc)
		end := anchor.Date(label+1, loc).AddDate(0, 0, -1)
		want := spanDays(start, end)

		mask := make([]bool, len(set.Dates))
		got := 0
		for i, d := range set.Dates {
			if !d.Before(start) && !d.After(end) {
				mask[i] = true
				got++
			}
		}
		if got != want {
			return nil, &IncompleteYearError{Year: label, Want: want, Got: got}
		}
		for i, member := range mask {
			if !member {
				continue
			}
			for _, v := range set.Flows.Row(i) {
				if math.IsNaN(v) {
					return nil, &InvalidDataError{Year: label}
				}
			}
		}
		set.Years = append(set.Years, Year{Label: label, Days: want, Mask: mask})
	}
	return set, nil
}

func spanDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func countBetween(dates []time.Time, head, tail time.Time) int {
	n := 0
	for _, d := range dates {
		if !d.Before(head) && !d.After(tail) {
			n++
		}
	}
	return n
}

func selectDates(dates []time.Time, keep []bool) []time.Time {
	out := make([]time.Time, 0, len(dates))
	for i, d := range dates {
		if keep[i] {
			out = append(out, d)
		}
	}
	return out
}

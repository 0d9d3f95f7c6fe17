// Package hydroyear partitions a daily time axis into complete hydrological
// years. A hydrological year starts on a configurable day/month anchor
// (1 October by convention) so that wet and dry seasons are not split
// across calendar-year boundaries.
package hydroyear

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Anchor is the day/month a hydrological year starts on.
type Anchor struct {
	Day   int
	Month time.Month
}

// DefaultAnchor is 1 October, the conventional start of the water year.
var DefaultAnchor = Anchor{Day: 1, Month: time.October}

// ParseAnchor parses an anchor in "DD/MM" form. 29 February is rejected:
// an anchor must exist in every calendar year.
func ParseAnchor(s string) (Anchor, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Anchor{}, &InvalidAnchorError{Anchor: s}
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return Anchor{}, &InvalidAnchorError{Anchor: s}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Anchor{}, &InvalidAnchorError{Anchor: s}
	}
	if month < 1 || month > 12 || day < 1 {
		return Anchor{}, &InvalidAnchorError{Anchor: s}
	}
	// round-trip through a non-leap year to catch day overflow (31/04, 29/02)
	probe := time.Date(2001, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if probe.Day() != day || probe.Month() != time.Month(month) {
		return Anchor{}, &InvalidAnchorError{Anchor: s}
	}
	return Anchor{Day: day, Month: time.Month(month)}, nil
}

// Date returns the anchor date in the given year, at midnight in loc.
func (a Anchor) Date(year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, a.Month, a.Day, 0, 0, 0, 0, loc)
}

// String renders the anchor back to "DD/MM".
func (a Anchor) String() string {
	return fmt.Sprintf("%02d/%02d", a.Day, int(a.Month))
}

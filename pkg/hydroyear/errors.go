package hydroyear

import "fmt"

// InvalidAnchorError reports an anchor string that does not name a valid
// day/month present in every calendar year.
type InvalidAnchorError struct {
	Anchor string
}

func (e *InvalidAnchorError) Error() string {
	return fmt.Sprintf("invalid hydrological year anchor %q (want \"DD/MM\")", e.Anchor)
}

// IncompleteYearError reports a hydrological year whose observed day count
// does not match its calendar span.
type IncompleteYearError struct {
	Year int
	Want int
	Got  int
}

func (e *IncompleteYearError) Error() string {
	return fmt.Sprintf("hydrological year %d is not complete: have %d days, want %d",
		e.Year, e.Got, e.Want)
}

// InvalidDataError reports missing (NaN) flow values inside a hydrological
// year under analysis.
type InvalidDataError struct {
	Year int
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("hydrological year %d contains invalid flow values (NaN)", e.Year)
}

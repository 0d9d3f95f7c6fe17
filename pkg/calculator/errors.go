package calculator

import "fmt"

// InputShapeError reports a date or flow input whose shape does not form a
// valid daily record.
type InputShapeError struct {
	Reason string
}

func (e *InputShapeError) Error() string {
	return "invalid input shape: " + e.Reason
}

// IndexDimensionError reports an axis flag outside {0, 1}.
type IndexDimensionError struct {
	Axis int
}

func (e *IndexDimensionError) Error() string {
	return fmt.Sprintf("axis must be 0 or 1, got %d", e.Axis)
}

// CharacteristicError reports a characteristic function that returned an
// error for the given position in the requested list.
type CharacteristicError struct {
	Index int
	Err   error
}

func (e *CharacteristicError) Error() string {
	return fmt.Sprintf("characteristic %d failed: %v", e.Index, e.Err)
}

func (e *CharacteristicError) Unwrap() error { return e.Err }

// IncompleteResultError reports a characteristic function that returned
// without error but left a series value unresolved (NaN) or returned the
// wrong number of values. This is a dispatch failure, never silently
// returned to the caller as data.
type IncompleteResultError struct {
	Index  int
	Series int
}

func (e *IncompleteResultError) Error() string {
	return fmt.Sprintf("characteristic %d left series %d unresolved", e.Index, e.Series)
}

// BatchLengthMismatchError reports parallel batch input sequences of
// unequal length.
type BatchLengthMismatchError struct {
	Field string
	Want  int
	Got   int
}

func (e *BatchLengthMismatchError) Error() string {
	return fmt.Sprintf("batch input %q has length %d, want %d", e.Field, e.Got, e.Want)
}

// TaskFailure wraps a failed batch task with enough context to locate the
// offending input. Any task failure aborts the whole batch.
type TaskFailure struct {
	Index        int
	DrainageArea []float64
	Err          error
}

func (e *TaskFailure) Error() string {
	return fmt.Sprintf("batch task %d (drainage area %v) failed: %v", e.Index, e.DrainageArea, e.Err)
}

func (e *TaskFailure) Unwrap() error { return e.Err }

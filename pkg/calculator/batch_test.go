package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// areaFn reduces each series to its drainage area, making task identity
// visible in the results.
func areaFn(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
	out := make([]float64, flows.Cols())
	for s := range out {
		a := area[0]
		if len(area) > 1 {
			a = area[s]
		}
		out[s] = a
	}
	return out, nil
}

func batchInputs(n int) ([][]time.Time, []*flowseries.Matrix, [][]float64) {
	dates := make([][]time.Time, n)
	flows := make([]*flowseries.Matrix, n)
	areas := make([][]float64, n)
	for i := 0; i < n; i++ {
		d, rows := threeYears()
		dates[i] = d
		flows[i] = constantMatrix(rows, 1, float64(i+1))
		areas[i] = []float64{float64((i + 1) * 10)}
	}
	return dates, flows, areas
}

func TestRunBatchOrder(t *testing.T) {
	dates, flows, areas := batchInputs(4)
	results, err := RunBatch(context.Background(), []Characteristic{areaFn}, dates, flows, areas, nil, BatchOptions{Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		want := float32((i + 1) * 10)
		if r.At(0, 0) != want {
			t.Errorf("task %d: expected %v, got %v", i, want, r.At(0, 0))
		}
	}
}

func TestRunBatchLengthMismatch(t *testing.T) {
	dates, flows, areas := batchInputs(3)
	_, err := RunBatch(context.Background(), []Characteristic{areaFn}, dates, flows[:2], areas, nil, BatchOptions{})
	var mismatch *BatchLengthMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected BatchLengthMismatchError, got %v", err)
	}
	if mismatch.Want != 3 || mismatch.Got != 2 {
		t.Errorf("expected want 3 got 2, have want %d got %d", mismatch.Want, mismatch.Got)
	}
}

func TestRunBatchTaskFailure(t *testing.T) {
	dates, flows, areas := batchInputs(3)
	boom := errors.New("boom")
	failOnTwo := func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		if area[0] == 30 {
			return nil, boom
		}
		return []float64{0}, nil
	}
	_, err := RunBatch(context.Background(), []Characteristic{failOnTwo}, dates, flows, areas, nil, BatchOptions{Workers: 1})
	var failure *TaskFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected TaskFailure, got %v", err)
	}
	if failure.Index != 2 {
		t.Errorf("expected failing task 2, got %d", failure.Index)
	}
	if len(failure.DrainageArea) != 1 || failure.DrainageArea[0] != 30 {
		t.Errorf("expected drainage area [30], got %v", failure.DrainageArea)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause to survive")
	}
}

func TestRunBatchPerTaskYears(t *testing.T) {
	dates, flows, areas := batchInputs(2)
	countYears := func(flows *flowseries.Matrix, dates []time.Time, years []hydroyear.Year, area []float64) ([]float64, error) {
		return []float64{float64(len(years))}, nil
	}
	years := [][]int{{1995}, nil}
	results, err := RunBatch(context.Background(), []Characteristic{countYears}, dates, flows, areas, years, BatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].At(0, 0) != 1 {
		t.Errorf("task 0: expected 1 year, got %v", results[0].At(0, 0))
	}
	if results[1].At(0, 0) != 3 {
		t.Errorf("task 1: expected 3 years, got %v", results[1].At(0, 0))
	}
}

func TestRunBatchCancelledContext(t *testing.T) {
	dates, flows, areas := batchInputs(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBatch(ctx, []Characteristic{areaFn}, dates, flows, areas, nil, BatchOptions{Workers: 1})
	if err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

package calculator

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

// BatchOptions configure the parallel batch runner.
type BatchOptions struct {
	// Anchor is the hydrological year start shared by every task; the zero
	// value means hydroyear.DefaultAnchor.
	Anchor hydroyear.Anchor
	// Workers bounds the number of tasks in flight; zero or negative means
	// the number of available cores.
	Workers int
	// Logger receives per-task failure context. Nil disables logging.
	Logger *zap.SugaredLogger
}

// RunBatch applies the characteristic functions independently to many
// unrelated flow records. The parallel input sequences must all have
// length N; years may be nil (whole record for every task) or length N
// with nil entries for tasks using their whole record. Flow matrices are
// given in the canonical time-major orientation.
//
// Tasks share nothing and run on a bounded pool, one fresh goroutine per
// task. The first failure logs the task's index and drainage area and
// aborts the batch; results come back in input order regardless of
// completion order, each written at its own task index.
func RunBatch(ctx context.Context, fns []Characteristic, dates [][]time.Time, flows []*flowseries.Matrix, areas [][]float64, years [][]int, opts BatchOptions) ([]*ResultMatrix, error) {
	n := len(dates)
	if len(flows) != n {
		return nil, &BatchLengthMismatchError{Field: "flows", Want: n, Got: len(flows)}
	}
	if len(areas) != n {
		return nil, &BatchLengthMismatchError{Field: "drainage areas", Want: n, Got: len(areas)}
	}
	if years != nil && len(years) != n {
		return nil, &BatchLengthMismatchError{Field: "years", Want: n, Got: len(years)}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.With("batch", uuid.NewString())
	logger.Debugw("starting characteristic batch", "tasks", n, "workers", workers)

	results := make([]*ResultMatrix, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			taskOpts := Options{Anchor: opts.Anchor}
			if years != nil {
				taskOpts.Years = years[i]
			}
			result, err := Calculate(fns, dates[i], flows[i], areas[i], taskOpts)
			if err != nil {
				logger.Errorw("characteristic task failed",
					"task", i, "drainage_area", areas[i], "error", err)
				return &TaskFailure{Index: i, DrainageArea: areas[i], Err: err}
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debugw("characteristic batch complete", "tasks", n)
	return results, nil
}

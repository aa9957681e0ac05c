package cli

import (
	"context"
	"errors"
	"time"

	"github.com/utkarsh5026/mrpool/internal/workload"
	"github.com/utkarsh5026/mrpool/pool"
)

// workflow is one map/reduce run over the documents named on the command line.
type workflow[R any] struct {
	name   string
	opts   *RootOptions
	out    *OutputFormatter
	mapFn  pool.MapFunc[workload.Document, R]
	reduce pool.ReduceFunc[R]
}

// run loads the inputs and folds them on a pool that closes itself after the
// call. Failures are reported through the formatter and returned as ExitErrors.
func (w *workflow[R]) run(ctx context.Context, paths []string) ([]workload.Document, R, error) {
	var zero R

	docs, err := LoadDocuments(ctx, paths)
	if err != nil {
		return nil, zero, w.out.Fail(ExitCommandError, ErrCodeInput, "failed to load inputs", err)
	}
	w.out.VerboseLog("[%s] loaded %d document(s)", w.out.RunID, len(docs))

	p, err := pool.NewPool[workload.Document, R](
		pool.WithWorkerCount(w.opts.Workers),
		pool.WithAutoClose(true),
	)
	if err != nil {
		return nil, zero, w.out.Fail(ExitCommandError, ErrCodeConfig, "invalid pool configuration", err)
	}

	stages := w.opts.stages()
	w.out.VerboseLog("[%s] %s: workers=%d inline=%t stages=%d",
		w.out.RunID, w.name, p.WorkerCount(), p.Inline(), stages)

	var result R
	start := time.Now()
	err = pool.Use(p, func(p *pool.Pool[workload.Document, R]) error {
		var err error
		result, err = p.MapReduce(ctx, docs, w.mapFn, w.reduce, w.callOptions(stages)...)
		return err
	})
	if err != nil {
		msg := w.name + " failed"
		if errors.Is(err, pool.ErrWorkerPanic) {
			msg = w.name + " failed: worker panic"
		}
		return nil, zero, w.out.Fail(ExitFailure, ErrCodeWorkflow, msg, err)
	}
	w.out.VerboseLog("[%s] %s done in %v", w.out.RunID, w.name, time.Since(start).Round(time.Millisecond))

	return docs, result, nil
}

func (w *workflow[R]) callOptions(stages int) []pool.CallOption {
	var opts []pool.CallOption
	if stages > 0 {
		opts = append(opts, pool.Stages(stages))
	}
	if w.opts.Progress {
		bar := pool.NewStageBar(w.name, w.out.GetErrWriter())
		opts = append(opts, pool.Progress(pool.ProgressBar[workload.Document](bar)))
	}
	return opts
}

package workers

import (
	"context"
)

// RunForEach executes op once per item across the group and returns the
// results in item order. Item i goes to worker i modulo the group size.
//
// It blocks until every dispatched item has finished. When an operation fails
// the remaining items are skipped and the error of the lowest failing index is
// returned; no partial results are returned. If the group is terminated while
// waiting, ErrTerminated is returned immediately.
func RunForEach[T, R any](
	ctx context.Context,
	g *Group,
	items []T,
	op func(ctx context.Context, item T) (R, error),
) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(g.ctx, cancel)
	defer stop()

	results := make([]R, len(items))
	errs := make([]error, len(items))
	done := make(chan struct{}, len(items))

	submitted := 0
	var submitErr error
	for i, item := range items {
		j := func(wctx context.Context) {
			defer func() { done <- struct{}{} }()
			if wctx.Err() != nil || callCtx.Err() != nil {
				return
			}
			r, err := Call(callCtx, op, item)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = r
		}

		if err := g.submit(callCtx, i%g.size, j); err != nil {
			submitErr = err
			cancel()
			break
		}
		submitted++
	}

	for range submitted {
		select {
		case <-done:
		case <-g.killed:
			return nil, ErrTerminated
		}
	}

	if g.State() == StateTerminated {
		return nil, ErrTerminated
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, submitErr
	}
	return results, nil
}

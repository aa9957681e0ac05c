// Package pool runs map/reduce workflows over a fixed-size pool of workers.
//
// The primary type is Pool[T, R]: a pool of workers that maps input elements
// of type T to results of type R and combines the results with an associative
// operator. The input is split into one contiguous part per worker, each
// worker maps and then folds its own part, and the per-worker partial results
// are folded together in part order.
//
// # Basic Usage
//
//	ctx := context.Background()
//	p, err := pool.NewPool[int, int](pool.WithWorkerCount(4))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	sum, err := p.MapReduce(ctx, []int{0, 1, 2},
//	    pool.MapOf(func(x int) int { return -x }),
//	    pool.ReduceOf(func(a, b int) int { return a + b }),
//	)
//	// sum == -3
//
// The combining operator must be associative; it need not be commutative,
// since results are always combined in input order.
//
// # Worker Count
//
//   - WithWorkerCount(n) with n > 0 uses exactly n workers
//   - WithWorkerCount(n) with n <= 0 uses AvailableCores()+n workers, so -1 means "all cores but one"
//   - Omitted, every available core is used
//
// A pool with a single worker runs inline: no goroutines are spawned and all
// work happens in the calling goroutine, producing the same results as a
// multi-worker pool for the same inputs.
//
// # Stages and Progress
//
// With WithStages(k) or the Stages(k) call option, the input is split into k
// stages that are processed one after another, each stage result being folded
// into a running accumulator. The stages are passed through a ProgressFunc
// before iteration, which makes per-stage progress reporting possible:
//
//	bar := progressbar.Default(-1, "indexing")
//	idx, err := p.MapReduce(ctx, docs, index, merge,
//	    pool.Stages(10),
//	    pool.Progress(pool.ProgressBar[Doc](bar)),
//	)
//
// # Lifecycle
//
// A pool is open until Close or Terminate is called, or until the first call
// completes on a pool built WithAutoClose(true). Calls on a pool that is not
// open fail with ErrPoolNotRunning. Use and WithPool scope a pool to a
// function and close it on every exit path:
//
//	err := pool.WithPool(func(p *pool.Pool[int, []int]) error {
//	    out, err := p.MapConcat(ctx, xs, addOne)
//	    ...
//	}, pool.WithWorkerCount(2))
//
// # One-shot Functions
//
// MapReduce and MapConcat at package level build a transient pool, run a
// single workflow and close the pool, so no lifecycle management is needed.
//
// # Error Handling
//
// Errors returned by the map or reduce function propagate unchanged and fail
// the whole call; there is no retry and no partial result. Panics are
// converted into errors wrapping ErrWorkerPanic with the stack trace attached.
// Folding an empty sequence fails with ErrEmptyReduce.
//
// Pool methods are not meant to be called concurrently from several
// goroutines: two racing calls can both pass the "is open" check before
// either of them closes the pool.
package pool

package pool

import (
	"context"

	"github.com/utkarsh5026/mrpool/internal/cpu"
	"github.com/utkarsh5026/mrpool/internal/parts"
)

// MapReduce runs a single map/reduce workflow without exposing a pool.
// The options are those of NewPool; stages and progress given there apply to
// this one call, and the transient pool is always closed afterwards.
//
// With a worker count of one no pool is built at all: every element is mapped
// and folded left to right in the calling goroutine. Requested stages are
// still passed through the progress wrapper.
//
// Example:
//
//	sum, err := MapReduce(ctx, []int{0, 1, 2},
//	    MapOf(func(x int) int { return -x }),
//	    ReduceOf(func(a, b int) int { return a + b }),
//	)
//	// sum == -3
func MapReduce[T, R any](
	ctx context.Context,
	xs []T,
	m MapFunc[T, R],
	r ReduceFunc[R],
	opts ...PoolOption,
) (R, error) {
	cfg := newPoolConfig(opts...)
	n, err := resolveWorkerCount(cfg, cpu.Available())
	if err != nil {
		var zero R
		return zero, err
	}

	if n == 1 {
		return sequential(ctx, xs, m, r, cfg.stages, checkProgress[T](cfg.progress, "WithProgress"))
	}

	p, err := NewPool[T, R](opts...)
	if err != nil {
		var zero R
		return zero, err
	}
	defer p.Close()

	return p.MapReduce(ctx, xs, m, r, Close(true))
}

// MapConcat runs a single workflow that maps every element of xs to a slice
// and concatenates the slices in input order. Options are as for MapReduce.
//
// Example:
//
//	out, err := MapConcat(ctx, []int{0, 1, 2}, MapOf(func(x int) []int { return []int{x + 1} }))
//	// out == []int{1, 2, 3}
func MapConcat[T, E any](ctx context.Context, xs []T, m MapFunc[T, []E], opts ...PoolOption) ([]E, error) {
	return MapReduce(ctx, xs, m, Concat[E], opts...)
}

// sequential maps all of xs and folds every mapped value left to right in the
// calling goroutine. Stages only affect what the progress wrapper observes.
func sequential[T, R any](
	ctx context.Context,
	xs []T,
	m MapFunc[T, R],
	r ReduceFunc[R],
	stages int,
	progress ProgressFunc[T],
) (R, error) {
	var zero R

	if stages <= 0 {
		mapped, err := mapPart(ctx, m, xs)
		if err != nil {
			return zero, err
		}
		return fold(r, mapped)
	}

	if progress == nil {
		progress = Identity[T]
	}

	mapped := make([]R, 0, len(xs))
	for stage := range progress(parts.Split(xs, stages)) {
		out, err := mapPart(ctx, m, stage)
		if err != nil {
			return zero, err
		}
		mapped = append(mapped, out...)
	}
	return fold(r, mapped)
}

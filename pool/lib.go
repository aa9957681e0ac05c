package pool

import (
	"context"
	"iter"

	"github.com/utkarsh5026/mrpool/internal/workers"
)

// mapPart applies m to every element of part in order.
func mapPart[T, R any](ctx context.Context, m MapFunc[T, R], part []T) ([]R, error) {
	out := make([]R, 0, len(part))
	for _, x := range part {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		y, err := workers.Call(ctx, m, x)
		if err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, nil
}

// fold combines xs left to right with r. An empty xs fails with ErrEmptyReduce.
func fold[R any](r ReduceFunc[R], xs []R) (acc R, err error) {
	if len(xs) == 0 {
		return acc, ErrEmptyReduce
	}

	defer func() {
		if v := recover(); v != nil {
			var zero R
			acc, err = zero, workers.Recovered(v)
		}
	}()

	acc = xs[0]
	for _, x := range xs[1:] {
		if acc, err = r(acc, x); err != nil {
			var zero R
			return zero, err
		}
	}
	return acc, nil
}

// combine applies r once with panic recovery.
func combine[R any](r ReduceFunc[R], a, b R) (R, error) {
	return fold(r, []R{a, b})
}

// enumerate pairs every element of seq with its position.
func enumerate[V any](seq iter.Seq[V]) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		i := 0
		for v := range seq {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}

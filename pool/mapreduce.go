package pool

import (
	"context"
	"iter"

	"github.com/utkarsh5026/mrpool/internal/parts"
	"github.com/utkarsh5026/mrpool/internal/workers"
)

// MapReduce applies m to every element of xs and combines the results with r.
//
// Without stages, xs is split into one part per worker; each worker maps and
// folds its part, and the partial results are folded in part order. With
// stages, xs is first split into that many stages, each stage is processed
// that way in turn, and stage results are folded left to right.
//
// Parameters:
//   - ctx: Context for cancellation
//   - xs: Input elements
//   - m: Map function applied to each element
//   - r: Associative reduce function
//   - opts: Per-call overrides of the pool's stages, progress and close defaults
//
// Returns:
//   - The folded result
//   - ErrPoolNotRunning if the pool is not open, ErrEmptyReduce if a part or
//     stage is empty, or the first error returned by m or r
//
// Example:
//
//	total, err := p.MapReduce(ctx, files, countLines, sum, Stages(4), Close(true))
func (p *Pool[T, R]) MapReduce(
	ctx context.Context,
	xs []T,
	m MapFunc[T, R],
	r ReduceFunc[R],
	opts ...CallOption,
) (R, error) {
	var zero R

	cc, err := p.begin(opts)
	if err != nil {
		return zero, err
	}

	stages := p.stages
	if cc.stages > 0 {
		stages = cc.stages
	}
	progress := p.progress
	if cc.progress != nil {
		progress = checkProgress[T](cc.progress, "Progress")
	}
	if progress == nil {
		progress = Identity[T]
	}

	var result R
	if stages > 0 {
		debugLog("staged call: elements=%d stage sizes=%v", len(xs), parts.Lengths(len(xs), stages))
		chunks := parts.Split(xs, stages)
		result, err = p.runStages(ctx, progress(chunks), m, r)
	} else {
		result, err = p.run(ctx, xs, m, r)
	}
	if err != nil {
		return zero, err
	}

	p.finish(cc)
	return result, nil
}

// MapReduceSeq is MapReduce for inputs of unknown length. seq is consumed
// lazily in stages of stageSize elements (the last one may be shorter), each
// stage is mapped and folded across the workers as soon as it is complete,
// and stage results are folded left to right. A stageSize below one is
// treated as one.
//
// Only the Close call option applies; stage counts and progress wrappers need
// the stages up front.
//
// Example:
//
//	total, err := p.MapReduceSeq(ctx, lines(r), 1024, countWords, mergeCounts)
func (p *Pool[T, R]) MapReduceSeq(
	ctx context.Context,
	seq iter.Seq[T],
	stageSize int,
	m MapFunc[T, R],
	r ReduceFunc[R],
	opts ...CallOption,
) (R, error) {
	var zero R

	cc, err := p.begin(opts)
	if err != nil {
		return zero, err
	}

	result, err := p.runStages(ctx, parts.Chunk(seq, stageSize), m, r)
	if err != nil {
		return zero, err
	}

	p.finish(cc)
	return result, nil
}

// begin resolves the call options and checks that the pool is open.
// Close(true) marks the pool closed right away.
func (p *Pool[T, R]) begin(opts []CallOption) (*callConfig, error) {
	cc := &callConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closedLocked() {
		return nil, ErrPoolNotRunning
	}
	if cc.closeSet && cc.close {
		p.closed = true
	}
	return cc, nil
}

// finish closes the pool after a successful call if the call or the pool
// default asks for it.
func (p *Pool[T, R]) finish(cc *callConfig) {
	closeAfter := p.autoClose
	if cc.closeSet {
		closeAfter = cc.close
	}
	if closeAfter {
		p.Close()
	}
}

// run performs one map pass and one reduce pass over xs.
func (p *Pool[T, R]) run(ctx context.Context, xs []T, m MapFunc[T, R], r ReduceFunc[R]) (R, error) {
	mapped, err := p.mapParts(ctx, m, xs)
	if err != nil {
		var zero R
		return zero, err
	}
	return p.reduceParts(ctx, r, mapped)
}

// runStages processes the stages in order, folding each stage result into
// an accumulator that starts as the first stage's result.
func (p *Pool[T, R]) runStages(
	ctx context.Context,
	stages iter.Seq[[]T],
	m MapFunc[T, R],
	r ReduceFunc[R],
) (R, error) {
	var zero R

	var acc R
	first := true
	for i, stage := range enumerate(stages) {
		res, err := p.run(ctx, stage, m, r)
		if err != nil {
			return zero, err
		}
		if first {
			acc, first = res, false
		} else if acc, err = combine(r, acc, res); err != nil {
			return zero, err
		}
		debugLog("stage %d done: elements=%d", i+1, len(stage))
	}
	if first {
		return zero, ErrEmptyReduce
	}
	return acc, nil
}

// mapParts splits xs into one part per worker and maps every part.
// Inline pools map everything in the calling goroutine into a single part.
func (p *Pool[T, R]) mapParts(ctx context.Context, m MapFunc[T, R], xs []T) ([][]R, error) {
	if p.group == nil {
		out, err := mapPart(ctx, m, xs)
		if err != nil {
			return nil, err
		}
		return [][]R{out}, nil
	}

	return workers.RunForEach(ctx, p.group, parts.Split(xs, p.workerCount),
		func(ctx context.Context, part []T) ([]R, error) {
			return mapPart(ctx, m, part)
		},
	)
}

// reduceParts folds every part and then folds the partial results in part order.
// Inline pools fold in the calling goroutine without any dispatch.
func (p *Pool[T, R]) reduceParts(ctx context.Context, r ReduceFunc[R], xsPerPart [][]R) (R, error) {
	var partials []R
	if p.group == nil {
		partials = make([]R, 0, len(xsPerPart))
		for _, part := range xsPerPart {
			v, err := fold(r, part)
			if err != nil {
				var zero R
				return zero, err
			}
			partials = append(partials, v)
		}
	} else {
		var err error
		partials, err = workers.RunForEach(ctx, p.group, xsPerPart,
			func(_ context.Context, part []R) (R, error) {
				return fold(r, part)
			},
		)
		if err != nil {
			var zero R
			return zero, err
		}
	}
	return fold(r, partials)
}

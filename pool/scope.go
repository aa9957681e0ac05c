package pool

// Use runs fn with p and closes p on every exit path, including a panic in fn.
// The error returned by fn (or the panic) is propagated unchanged.
//
// Example:
//
//	p, err := NewPool[int, []int](WithWorkerCount(1))
//	if err != nil {
//	    return err
//	}
//	err = Use(p, func(p *Pool[int, []int]) error {
//	    out, err := p.MapConcat(ctx, xs, addOne)
//	    ...
//	})
func Use[T, R any](p *Pool[T, R], fn func(p *Pool[T, R]) error) error {
	defer p.Close()
	return fn(p)
}

// WithPool creates a pool from opts, runs fn with it and closes it afterwards.
func WithPool[T, R any](fn func(p *Pool[T, R]) error, opts ...PoolOption) error {
	p, err := NewPool[T, R](opts...)
	if err != nil {
		return err
	}
	return Use(p, fn)
}

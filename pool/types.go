package pool

import (
	"context"
	"fmt"
	"iter"
)

// MapFunc transforms a single input element. It runs on a worker goroutine
// (or inline for single-worker pools) and receives a context that is cancelled
// when the call fails elsewhere or the pool is terminated.
//
// Type parameters:
//   - T: The type of input element
//   - R: The type of mapped result
type MapFunc[T any, R any] func(ctx context.Context, x T) (R, error)

// ReduceFunc combines two results into one. It must be associative.
type ReduceFunc[R any] func(a, b R) (R, error)

// ProgressFunc wraps the ordered stages of a staged call before they are
// processed. The returned sequence must yield the stages in order; a wrapper
// can observe each stage as it is requested and again once the loop body
// for it has returned, i.e. once the stage has been folded in.
type ProgressFunc[T any] func(stages [][]T) iter.Seq[[]T]

// MapOf adapts an infallible function to a MapFunc.
func MapOf[T, R any](f func(T) R) MapFunc[T, R] {
	return func(_ context.Context, x T) (R, error) {
		return f(x), nil
	}
}

// ReduceOf adapts an infallible binary function to a ReduceFunc.
func ReduceOf[R any](f func(a, b R) R) ReduceFunc[R] {
	return func(a, b R) (R, error) {
		return f(a, b), nil
	}
}

// State is the lifecycle state of a Pool.
type State int

const (
	StateOpen State = iota
	StateClosed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

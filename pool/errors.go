package pool

import (
	"errors"

	"github.com/utkarsh5026/mrpool/internal/workers"
)

var (
	// ErrPoolNotRunning is returned by calls made on a pool that is closed or terminated.
	ErrPoolNotRunning = errors.New("pool not running")

	// ErrEmptyReduce is returned when a part or stage to be folded has no elements.
	ErrEmptyReduce = errors.New("reduce of empty sequence with no initial value")

	// ErrInvalidWorkerCount is returned by NewPool when the requested worker
	// count resolves to less than one worker.
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrNotConcatenable is returned by MapConcat when the result type is
	// neither a slice nor a string.
	ErrNotConcatenable = errors.New("result type does not support concatenation")

	// ErrWorkerPanic wraps a panic raised by a map or reduce function.
	ErrWorkerPanic = workers.ErrWorkerPanic

	// ErrTerminated is returned by a call that was in flight when Terminate was called.
	ErrTerminated = workers.ErrTerminated
)

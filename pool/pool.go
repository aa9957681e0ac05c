package pool

import (
	"fmt"
	"sync"

	"github.com/utkarsh5026/mrpool/internal/cpu"
	"github.com/utkarsh5026/mrpool/internal/workers"
)

// Pool is a map/reduce resource pool backed by a fixed set of workers.
// It can run any number of workflows until it is closed.
//
// Type parameters:
//   - T: The input element type
//   - R: The result type produced by the map function and combined by the reduce function
type Pool[T any, R any] struct {
	workerCount int
	stages      int
	progress    ProgressFunc[T]
	autoClose   bool

	group *workers.Group // nil in inline mode

	mu         sync.Mutex
	closed     bool
	terminated bool
}

// NewPool creates a pool with the given options.
//
// Default configuration:
//   - workerCount: AvailableCores()
//   - stages: none (single pass)
//   - progress: Identity
//   - autoClose: false
//
// A resolved worker count of one creates an inline pool that spawns no
// goroutines. A count that resolves below one fails with ErrInvalidWorkerCount.
//
// Example:
//
//	p, err := NewPool[string, map[string]int](
//	    WithWorkerCount(-1),
//	    WithStages(8),
//	)
func NewPool[T any, R any](opts ...PoolOption) (*Pool[T, R], error) {
	cfg := newPoolConfig(opts...)

	n, err := resolveWorkerCount(cfg, cpu.Available())
	if err != nil {
		return nil, err
	}

	p := &Pool[T, R]{
		workerCount: n,
		stages:      cfg.stages,
		progress:    checkProgress[T](cfg.progress, "WithProgress"),
		autoClose:   cfg.autoClose,
	}

	if n != 1 {
		g, err := workers.Spawn(n, cfg.workerOpts...)
		if err != nil {
			return nil, err
		}
		p.group = g
	}

	debugLog("pool created: workers=%d inline=%t stages=%d autoClose=%t", n, p.group == nil, p.stages, p.autoClose)
	return p, nil
}

// resolveWorkerCount applies the defaulting rules for the worker count against
// the given number of available cores.
func resolveWorkerCount(cfg *poolConfig, available int) (int, error) {
	if !cfg.workerCountSet {
		return available, nil
	}

	n := cfg.workerCount
	if n <= 0 {
		n = available + n
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d resolves to %d with %d available cores",
			ErrInvalidWorkerCount, cfg.workerCount, n, available)
	}
	return n, nil
}

// WorkerCount returns the resolved number of workers.
func (p *Pool[T, R]) WorkerCount() int {
	return p.workerCount
}

// AvailableCores returns the number of cores currently available to the process.
func (p *Pool[T, R]) AvailableCores() int {
	return cpu.Available()
}

// Inline reports whether the pool runs everything in the calling goroutine.
func (p *Pool[T, R]) Inline() bool {
	return p.group == nil
}

// Close prevents further calls and releases the workers.
// It is safe to call more than once. Close must not be called from inside a
// map or reduce function running on the pool.
func (p *Pool[T, R]) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	if p.group != nil {
		p.group.Dispose()
	}
	debugLog("pool closed")
}

// Terminate closes the pool and tears the workers down immediately. A call in
// flight on another goroutine fails with ErrTerminated; map and reduce
// functions that are already running see their context cancelled and their
// results are dropped.
func (p *Pool[T, R]) Terminate() {
	p.mu.Lock()
	p.closed = true
	p.terminated = true
	p.mu.Unlock()

	if p.group != nil {
		p.group.ForceDispose()
	}
	debugLog("pool terminated")
}

// Closed reports whether the pool no longer accepts calls.
func (p *Pool[T, R]) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closedLocked()
}

func (p *Pool[T, R]) closedLocked() bool {
	if p.group == nil {
		return p.closed
	}
	return p.closed || p.group.Disposed()
}

// State returns the lifecycle state of the pool.
func (p *Pool[T, R]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.terminated || (p.group != nil && p.group.State() == workers.StateTerminated):
		return StateTerminated
	case p.closedLocked():
		return StateClosed
	default:
		return StateOpen
	}
}

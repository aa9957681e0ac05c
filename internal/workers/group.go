package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrDisposed is returned when work is dispatched to a group after Dispose.
	ErrDisposed = errors.New("workers: group disposed")

	// ErrTerminated is returned when work is dispatched to a group after
	// ForceDispose, and to callers whose dispatch was cut short by it.
	ErrTerminated = errors.New("workers: group terminated")

	// ErrWorkerPanic wraps a panic raised by an operation run on a worker.
	ErrWorkerPanic = errors.New("worker panic")
)

// State is the lifecycle state of a Group.
type State int32

const (
	StateRunning State = iota
	StateClosed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// job is one queued item. wctx is the group context; it is cancelled by ForceDispose.
type job func(wctx context.Context)

// Group is a fixed set of persistent worker goroutines, each reading from its
// own queue.
type Group struct {
	size   int
	conf   config
	queues []chan job

	ctx    context.Context
	cancel context.CancelFunc
	eg     errgroup.Group

	mu     sync.RWMutex // held for reading while submitting, for writing while closing queues
	state  atomic.Int32
	killed chan struct{}
}

// Spawn starts a group of n workers.
func Spawn(n int, opts ...Option) (*Group, error) {
	if n < 1 {
		return nil, fmt.Errorf("workers: invalid group size %d", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Group{
		size:   n,
		conf:   newConfig(n, opts...),
		queues: make([]chan job, n),
		ctx:    ctx,
		cancel: cancel,
		killed: make(chan struct{}),
	}

	for i := range n {
		g.queues[i] = make(chan job, g.conf.taskBuffer)
	}
	for i := range n {
		g.eg.Go(func() error {
			return g.worker(i)
		})
	}

	return g, nil
}

// Size returns the number of workers.
func (g *Group) Size() int {
	return g.size
}

// State returns the current lifecycle state.
func (g *Group) State() State {
	return State(g.state.Load())
}

// Disposed reports whether Dispose or ForceDispose has been called.
func (g *Group) Disposed() bool {
	return g.State() != StateRunning
}

// Dispose stops accepting work, lets queued items run to completion and waits
// for every worker to exit. It is safe to call more than once.
// Dispose must not be called from an operation running on the group.
func (g *Group) Dispose() {
	g.mu.Lock()
	if !g.state.CompareAndSwap(int32(StateRunning), int32(StateClosed)) {
		g.mu.Unlock()
		return
	}
	for _, q := range g.queues {
		close(q)
	}
	g.mu.Unlock()

	_ = g.eg.Wait()
	g.cancel()
}

// ForceDispose cancels the group context, drops queued items and releases
// callers blocked in RunForEach. It does not wait for operations that are
// already running; they observe the cancellation through their context and
// their results are discarded.
//
// The state flips to StateTerminated before the context is cancelled, so any
// failure caused by the cancellation is seen together with the new state.
func (g *Group) ForceDispose() {
	prev := State(g.state.Swap(int32(StateTerminated)))
	if prev == StateTerminated {
		return
	}
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	close(g.killed)
	if prev == StateRunning {
		for _, q := range g.queues {
			close(q)
		}
	}
}

// worker runs the event loop of worker id until its queue is closed or the
// group is terminated.
func (g *Group) worker(id int) error {
	release := g.conf.affinity.Bind(id)
	defer release()

	q := g.queues[id]
	for {
		select {
		case <-g.ctx.Done():
			g.drain(q)
			return nil
		case j, ok := <-q:
			if !ok {
				return nil
			}
			if g.conf.rateLimiter != nil {
				if err := g.conf.rateLimiter.Wait(g.ctx); err != nil {
					j(g.ctx)
					continue
				}
			}
			j(g.ctx)
		}
	}
}

// drain runs whatever is left in q without blocking. Once the group context is
// cancelled every job returns straight away, so this only unblocks waiters.
func (g *Group) drain(q <-chan job) {
	for {
		select {
		case j, ok := <-q:
			if !ok {
				return
			}
			j(g.ctx)
		default:
			return
		}
	}
}

func (g *Group) submit(ctx context.Context, id int, j job) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch g.State() {
	case StateClosed:
		return ErrDisposed
	case StateTerminated:
		return ErrTerminated
	}

	select {
	case g.queues[id] <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-g.ctx.Done():
		return ErrTerminated
	}
}

// Call runs op with panic recovery. A panic is converted into an error
// wrapping ErrWorkerPanic together with the stack trace.
func Call[T, R any](ctx context.Context, op func(context.Context, T) (R, error), x T) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r)
		}
	}()

	return op(ctx, x)
}

// Recovered turns a value obtained from recover into an error wrapping
// ErrWorkerPanic. It must be called from the deferred function that recovered,
// so that the captured stack is the panicking one.
func Recovered(r any) error {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkerPanic, r, buf[:n])
}

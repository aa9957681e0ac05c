package pool

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"testing"

	"github.com/utkarsh5026/mrpool/internal/workload"
)

// workerCounts are the pool sizes every behavioural test runs against.
// One exercises the inline path, the rest the worker path.
var workerCounts = []int{1, 2, 4}

func runWorkerCountTest(t *testing.T, testFunc func(t *testing.T, n int), counts ...int) {
	if len(counts) == 0 {
		counts = workerCounts
	}
	for _, n := range counts {
		t.Run(fmt.Sprintf("workers=%d", n), func(t *testing.T) {
			testFunc(t, n)
		})
	}
}

func newTestPool[T, R any](t *testing.T, opts ...PoolOption) *Pool[T, R] {
	t.Helper()
	p, err := NewPool[T, R](opts...)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

var (
	negate = MapOf(workload.Negate)
	add    = ReduceOf(workload.Add)
	addOne = MapOf(workload.AddOne)
	index  = MapOf(workload.SyntheticIndex)
	merge  = ReduceOf(workload.Merge)
)

// referenceIndex is the index of documents 0..49 built sequentially.
func referenceIndex() workload.InvertedIndex {
	acc := workload.SyntheticIndex(0)
	for id := 1; id < 50; id++ {
		acc = workload.Merge(acc, workload.SyntheticIndex(id))
	}
	return acc
}

// stageLog is a ProgressFunc that records every stage it hands out.
type stageLog[T any] struct {
	mu     sync.Mutex
	stages [][]T
	calls  int
}

func (l *stageLog[T]) wrap(stages [][]T) iter.Seq[[]T] {
	l.mu.Lock()
	l.calls++
	l.stages = append(l.stages, stages...)
	l.mu.Unlock()
	return slices.Values(stages)
}

func (l *stageLog[T]) flat() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Concat(l.stages...)
}

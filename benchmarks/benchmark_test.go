package benchmarks

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/utkarsh5026/mrpool/internal/workload"
	"github.com/utkarsh5026/mrpool/pool"
)

// =============================================================================
// Benchmark Workload Generators
// =============================================================================

// cpuBoundWork simulates a CPU-intensive map function
func cpuBoundWork(iterations int) pool.MapFunc[int, int] {
	return func(ctx context.Context, x int) (int, error) {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * x
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) pool.MapFunc[int, int] {
	return func(ctx context.Context, x int) (int, error) {
		select {
		case <-time.After(delay):
			return x * 2, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

var sum = pool.ReduceOf(workload.Add)

// =============================================================================
// Throughput Benchmarks
// =============================================================================

func BenchmarkMapReduce_WorkerScaling(b *testing.B) {
	xs := workload.Range(10000)
	workerCounts := []int{1, 2, 4, 8, 16}

	for _, n := range workerCounts {
		b.Run(workersName(n), func(b *testing.B) {
			runMapReduceBenchmark(b, []pool.PoolOption{pool.WithWorkerCount(n)}, xs, cpuBoundWork(1000), sum)
		})
	}
}

func BenchmarkMapReduce_Configs(b *testing.B) {
	xs := workload.Range(10000)

	for _, cfg := range getAllConfigs(runtime.NumCPU()) {
		b.Run(cfg.name, func(b *testing.B) {
			runMapReduceBenchmark(b, cfg.opts, xs, cpuBoundWork(1000), sum)
		})
	}
}

func BenchmarkMapReduce_IOBound(b *testing.B) {
	xs := workload.Range(200)

	for _, n := range []int{1, 4, 16} {
		b.Run(workersName(n), func(b *testing.B) {
			runMapReduceBenchmark(b, []pool.PoolOption{pool.WithWorkerCount(n)}, xs, ioBoundWork(100*time.Microsecond), sum)
		})
	}
}

// =============================================================================
// Workload Benchmarks
// =============================================================================

func BenchmarkMapReduce_InvertedIndex(b *testing.B) {
	ids := workload.Range(500)
	index := pool.MapOf(workload.SyntheticIndex)
	merge := pool.ReduceOf(workload.Merge)

	for _, n := range []int{1, 2, 4, 8} {
		b.Run(workersName(n), func(b *testing.B) {
			runMapReduceBenchmark(b, []pool.PoolOption{pool.WithWorkerCount(n)}, ids, index, merge)
		})
	}
}

func BenchmarkMapReduce_WordCount(b *testing.B) {
	docs := make([]workload.Document, 256)
	for i := range docs {
		docs[i] = workload.Document{
			ID:   i,
			Name: fmt.Sprintf("doc-%d", i),
			Text: strings.Repeat(fmt.Sprintf("Alpha beta GAMMA delta %d. ", i%7), 50),
		}
	}
	count := pool.MapOf(workload.CountWords)
	merge := pool.ReduceOf(workload.MergeCounts)

	for _, n := range []int{1, 4, 8} {
		b.Run(workersName(n), func(b *testing.B) {
			runMapReduceBenchmark(b, []pool.PoolOption{pool.WithWorkerCount(n)}, docs, count, merge)
		})
	}
}

func BenchmarkMapConcat(b *testing.B) {
	xs := workload.Range(10000)
	addOne := pool.MapOf(workload.AddOne)

	for _, n := range []int{1, 4, 8} {
		b.Run(workersName(n), func(b *testing.B) {
			p, err := pool.NewPool[int, []int](pool.WithWorkerCount(n))
			if err != nil {
				b.Fatalf("failed to create pool: %v", err)
			}
			defer p.Close()

			b.ReportAllocs()
			for b.Loop() {
				if _, err := p.MapConcat(context.Background(), xs, addOne); err != nil {
					b.Fatalf("map/concat failed: %v", err)
				}
			}
		})
	}
}

// =============================================================================
// Lifecycle Benchmarks
// =============================================================================

func BenchmarkOneShot_MapReduce(b *testing.B) {
	xs := workload.Range(1000)
	negate := pool.MapOf(workload.Negate)

	for _, n := range []int{1, 4} {
		b.Run(workersName(n), func(b *testing.B) {
			for b.Loop() {
				if _, err := pool.MapReduce(context.Background(), xs, negate, sum, pool.WithWorkerCount(n)); err != nil {
					b.Fatalf("one-shot failed: %v", err)
				}
			}
		})
	}
}

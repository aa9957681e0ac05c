package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/utkarsh5026/mrpool/pool"
)

// poolConfig defines a benchmark configuration for a pool shape
type poolConfig struct {
	name string
	opts []pool.PoolOption
}

// getAllConfigs returns the pool shapes benchmarked for a worker count
func getAllConfigs(workerCount int) []poolConfig {
	return []poolConfig{
		{
			name: "Default",
			opts: []pool.PoolOption{
				pool.WithWorkerCount(workerCount),
			},
		},
		{
			name: "Staged",
			opts: []pool.PoolOption{
				pool.WithWorkerCount(workerCount),
				pool.WithStages(8),
			},
		},
		{
			name: "DeepBuffer",
			opts: []pool.PoolOption{
				pool.WithWorkerCount(workerCount),
				pool.WithTaskBuffer(64),
			},
		},
		{
			name: "Affinity",
			opts: []pool.PoolOption{
				pool.WithWorkerCount(workerCount),
				pool.WithCPUAffinity(true),
			},
		},
	}
}

// runMapReduceBenchmark runs one MapReduce per iteration on a shared pool
func runMapReduceBenchmark[T, R any](
	b *testing.B,
	opts []pool.PoolOption,
	xs []T,
	m pool.MapFunc[T, R],
	r pool.ReduceFunc[R],
) {
	b.Helper()

	p, err := pool.NewPool[T, R](opts...)
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	defer p.Close()

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := p.MapReduce(ctx, xs, m, r); err != nil {
			b.Fatalf("map/reduce failed: %v", err)
		}
	}

	b.ReportMetric(float64(len(xs)*b.N)/b.Elapsed().Seconds(), "elements/sec")
}

func workersName(n int) string {
	return fmt.Sprintf("Workers=%d", n)
}

package pool

import (
	"fmt"

	"github.com/utkarsh5026/mrpool/internal/workers"
)

// PoolOption is a functional option for configuring a Pool.
type PoolOption func(*poolConfig)

type poolConfig struct {
	workerCount    int
	workerCountSet bool
	stages         int
	progress       any // ProgressFunc[T], checked against T in NewPool
	autoClose      bool
	workerOpts     []workers.Option
}

// WithWorkerCount sets the number of workers.
// A count of zero or less is relative to the available cores: -1 means all
// cores but one. If not specified, every available core gets a worker.
func WithWorkerCount(count int) PoolOption {
	return func(cfg *poolConfig) {
		cfg.workerCount = count
		cfg.workerCountSet = true
	}
}

// WithStages sets the default number of stages for calls that do not pass Stages.
// Values below one leave staging off.
func WithStages(stages int) PoolOption {
	return func(cfg *poolConfig) {
		if stages > 0 {
			cfg.stages = stages
		}
	}
}

// WithProgress sets the default progress wrapper for staged calls.
// NewPool panics if the wrapper's element type is not the pool's input type.
func WithProgress[T any](fn ProgressFunc[T]) PoolOption {
	return func(cfg *poolConfig) {
		if fn != nil {
			cfg.progress = fn
		}
	}
}

// WithAutoClose makes the pool close itself after its first call completes,
// unless that call passes Close(false).
func WithAutoClose(enabled bool) PoolOption {
	return func(cfg *poolConfig) {
		cfg.autoClose = enabled
	}
}

// WithTaskBuffer sets the queue depth of each worker.
// If not specified, defaults to the worker count.
func WithTaskBuffer(size int) PoolOption {
	return func(cfg *poolConfig) {
		cfg.workerOpts = append(cfg.workerOpts, workers.WithTaskBuffer(size))
	}
}

// WithRateLimit throttles how fast workers start parts.
// partsPerSecond specifies the sustained rate and burst how many parts
// may start back to back. Inline pools are not throttled.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 parts/sec with burst of 5
func WithRateLimit(partsPerSecond float64, burst int) PoolOption {
	return func(cfg *poolConfig) {
		cfg.workerOpts = append(cfg.workerOpts, workers.WithRateLimit(partsPerSecond, burst))
	}
}

// WithCPUAffinity locks each worker to its own OS thread pinned to a core.
func WithCPUAffinity(enabled bool) PoolOption {
	return func(cfg *poolConfig) {
		cfg.workerOpts = append(cfg.workerOpts, workers.WithCPUAffinity(enabled))
	}
}

func newPoolConfig(opts ...PoolOption) *poolConfig {
	cfg := &poolConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// CallOption overrides a pool default for a single call.
type CallOption func(*callConfig)

type callConfig struct {
	stages   int
	progress any
	close    bool
	closeSet bool
}

// Stages splits the input into the given number of stages for this call.
// Values below one fall back to the pool default.
func Stages(stages int) CallOption {
	return func(cfg *callConfig) {
		if stages > 0 {
			cfg.stages = stages
		}
	}
}

// Progress sets the progress wrapper for this call.
func Progress[T any](fn ProgressFunc[T]) CallOption {
	return func(cfg *callConfig) {
		if fn != nil {
			cfg.progress = fn
		}
	}
}

// Close decides whether the pool is closed once this call completes.
//
// Close(true) marks the pool closed as soon as the call starts: Closed reports
// true during the call, and a call that fails leaves the pool closed although
// its workers are only released by a later Close or Terminate.
func Close(enabled bool) CallOption {
	return func(cfg *callConfig) {
		cfg.close = enabled
		cfg.closeSet = true
	}
}

// checkProgress asserts that a progress wrapper stored by an option matches
// the element type T.
//
// Panics:
//
//	If the wrapper was built for another element type. The panic message
//	names both types.
func checkProgress[T any](fn any, option string) ProgressFunc[T] {
	if fn == nil {
		return nil
	}
	typed, ok := fn.(ProgressFunc[T])
	if !ok {
		var zero T
		panic(fmt.Sprintf("%s wrapper has type %T, but pool processes elements of type %T", option, fn, zero))
	}
	return typed
}

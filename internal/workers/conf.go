package workers

import (
	"github.com/utkarsh5026/mrpool/internal/cpu"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a Group.
type Option func(*config)

type config struct {
	taskBuffer  int
	rateLimiter *rate.Limiter
	affinity    cpu.Affinity
}

// WithTaskBuffer sets the depth of each worker's queue.
// If not specified, defaults to the group size.
func WithTaskBuffer(size int) Option {
	return func(cfg *config) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithRateLimit throttles how fast workers start items.
// perSecond is the sustained rate across the whole group and burst the
// number of items that may start back to back.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 items/sec with burst of 5
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *config) {
		if perSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithCPUAffinity locks every worker goroutine to its own OS thread and pins
// the thread to a core, worker i going to the i-th allowed core.
func WithCPUAffinity(enabled bool) Option {
	return func(cfg *config) {
		if enabled {
			cfg.affinity = cpu.Pinned{}
		} else {
			cfg.affinity = cpu.Unpinned{}
		}
	}
}

func newConfig(size int, opts ...Option) config {
	cfg := config{
		taskBuffer: -1,
		affinity:   cpu.Unpinned{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.taskBuffer < 0 {
		cfg.taskBuffer = size
	}
	return cfg
}

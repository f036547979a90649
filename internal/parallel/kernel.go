package parallel

import (
	"log/slog"
	"time"

	"github.com/hupe1980/vecscript/internal/resource"
)

const (
	// DefaultMinParallel is the length at or below which sorts run
	// sequentially. Tuned on amd64; revalidate per platform.
	DefaultMinParallel = 1000

	// DefaultTasksPerThread controls how finely a parallel sort is split.
	DefaultTasksPerThread = 8
)

// Config tunes the kernels.
type Config struct {
	// MinParallel is the sequential fallback length. If <= 0,
	// DefaultMinParallel is used.
	MinParallel int

	// TasksPerThread is the number of leaf tasks each thread should receive
	// when the pool is saturated. If <= 0, DefaultTasksPerThread is used.
	TasksPerThread int
}

// Observer is notified after every sort.
type Observer func(n int, parallel bool, d time.Duration)

// Kernel runs parallel work on the worker slots of one session.
// A nil *Kernel is valid and runs everything sequentially.
type Kernel struct {
	cfg      Config
	rc       *resource.Controller
	observer Observer
	logger   *slog.Logger
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithObserver sets a callback invoked after each sort.
func WithObserver(o Observer) Option {
	return func(k *Kernel) {
		k.observer = o
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) {
		k.logger = l
	}
}

// NewKernel creates a Kernel that borrows worker slots from rc.
func NewKernel(rc *resource.Controller, cfg Config, opts ...Option) *Kernel {
	if cfg.MinParallel <= 0 {
		cfg.MinParallel = DefaultMinParallel
	}
	if cfg.TasksPerThread <= 0 {
		cfg.TasksPerThread = DefaultTasksPerThread
	}
	k := &Kernel{
		cfg: cfg,
		rc:  rc,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Threads returns the session thread count.
func (k *Kernel) Threads() int {
	if k == nil {
		return 1
	}
	return k.rc.Threads()
}

// MinParallel returns the sequential fallback length.
func (k *Kernel) MinParallel() int {
	if k == nil {
		return DefaultMinParallel
	}
	return k.cfg.MinParallel
}

// parallel reports whether n elements are worth splitting.
func (k *Kernel) parallel(n int) bool {
	return k != nil && k.Threads() > 1 && n > k.cfg.MinParallel
}

// fallback returns the leaf size below which a task sorts sequentially. The
// more threads are already busy, the larger the leaves.
func (k *Kernel) fallback(total int) int {
	threads := k.Threads()
	active := k.rc.ActiveThreads()
	f := total * active / (threads * k.cfg.TasksPerThread)
	return max(f, k.cfg.MinParallel)
}

// tryWorker reserves a worker slot for a forked task.
func (k *Kernel) tryWorker() bool {
	return k.rc.TryAcquireWorker()
}

func (k *Kernel) releaseWorker() {
	k.rc.ReleaseWorker()
}

func (k *Kernel) observe(n int, parallel bool, start time.Time) {
	if k == nil {
		return
	}
	d := time.Since(start)
	if k.logger != nil {
		k.logger.Debug("sort completed", "n", n, "parallel", parallel, "duration", d)
	}
	if k.observer != nil {
		k.observer(n, parallel, d)
	}
}

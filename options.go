package vecscript

import (
	"log/slog"
)

type options struct {
	threads          int
	sortThreshold    int
	tasksPerThread   int
	memoryLimit      int64
	poolInitial      int
	poolMaxBlock     int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open.
type Option func(*options)

// WithThreads sets the size of the session thread pool, including the
// calling goroutine. The count is fixed for the life of the runtime.
// If n is 0, runtime.GOMAXPROCS(0) is used. 1 disables parallel kernels.
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = n
	}
}

// WithSortThreshold sets the length at or below which sorts and orderings
// run sequentially, and the smallest leaf a parallel sort splits down to.
// The best value depends on the hardware; benchmark before changing it.
// If n is 0, the kernel default is used.
func WithSortThreshold(n int) Option {
	return func(o *options) {
		o.sortThreshold = n
	}
}

// WithTasksPerThread sets how many leaf tasks each thread should receive
// when a parallel sort runs on an idle pool.
// If n is 0, the kernel default is used.
func WithTasksPerThread(n int) Option {
	return func(o *options) {
		o.tasksPerThread = n
	}
}

// WithMemoryLimit caps the bytes of element storage all live values may
// hold. Exceeding it is an allocation failure, which panics with
// *value.AllocationError. 0 only tracks usage.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithPoolCapacity sizes the slab pool that issues value instances: the
// first slab holds initial instances and no slab exceeds maxBlock.
// Zero selects the pool defaults.
func WithPoolCapacity(initial, maxBlock int) Option {
	return func(o *options) {
		o.poolInitial = initial
		o.poolMaxBlock = maxBlock
	}
}

// WithMetricsCollector configures a metrics collector for sorts and
// dispatches. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecscript.BasicMetricsCollector{}
//	rt, _ := vecscript.Open(ctx, vecscript.WithMetricsCollector(metrics))
//	defer rt.Close(ctx)
//	// ... evaluate ...
//	stats := metrics.GetStats()
//	fmt.Printf("Sorts: %d, parallel: %d\n", stats.SortCount, stats.SortParallel)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vecscript.NewJSONLogger(slog.LevelDebug)
//	rt, _ := vecscript.Open(ctx, vecscript.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) (options, error) {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o, o.validate()
}

func (o *options) validate() error {
	switch {
	case o.threads < 0:
		return &OptionError{Option: "threads", Value: o.threads}
	case o.sortThreshold < 0:
		return &OptionError{Option: "sort threshold", Value: o.sortThreshold}
	case o.tasksPerThread < 0:
		return &OptionError{Option: "tasks per thread", Value: o.tasksPerThread}
	case o.memoryLimit < 0:
		return &OptionError{Option: "memory limit", Value: o.memoryLimit}
	case o.poolInitial < 0 || o.poolMaxBlock < 0:
		return &OptionError{Option: "pool capacity", Value: [2]int{o.poolInitial, o.poolMaxBlock}}
	}
	return nil
}

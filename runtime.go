package vecscript

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/vecscript/internal/parallel"
	"github.com/hupe1980/vecscript/internal/pool"
	"github.com/hupe1980/vecscript/internal/resource"
	"github.com/hupe1980/vecscript/value"
)

var (
	activeMu  sync.Mutex
	active    *Runtime
	sessionID atomic.Uint64
)

// Runtime is an evaluation session. It owns the thread pool that parallel
// sorts and reductions draw on, the memory budget of element storage and the
// pool that issues value instances, and installs them as the process-wide
// settings of package value until Close.
//
// At most one Runtime is open at a time.
type Runtime struct {
	id      uint64
	rc      *resource.Controller
	kernel  *parallel.Kernel
	pool    *pool.Pool[value.Value]
	prev    value.Settings
	metrics MetricsCollector
	logger  *Logger

	mu     sync.Mutex
	closed bool
}

// Stats describes a runtime's resource usage.
type Stats struct {
	Threads         int
	SortThreshold   int
	MemoryUsed      int64  // bytes of element storage held by live values
	MemoryLimit     int64  // 0 if unlimited
	ValuesAllocated uint64 // instances issued by the session pool
	LiveValues      int    // issued instances not yet released
	PoolBytes       int    // bytes reserved by the session pool
}

// Open starts a session. The thread count and sort threshold are fixed for
// its lifetime.
func Open(ctx context.Context, optFns ...Option) (*Runtime, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, ErrAlreadyOpen
	}

	rt := &Runtime{
		id:      sessionID.Add(1),
		metrics: opts.metricsCollector,
	}
	rt.logger = opts.logger.WithSession(rt.id)

	rt.rc = resource.NewController(resource.Config{
		MemoryLimitBytes: opts.memoryLimit,
		Threads:          opts.threads,
	})
	rt.kernel = parallel.NewKernel(rt.rc,
		parallel.Config{
			MinParallel:    opts.sortThreshold,
			TasksPerThread: opts.tasksPerThread,
		},
		parallel.WithObserver(rt.metrics.RecordSort),
		parallel.WithLogger(rt.logger.Logger),
	)
	rt.pool = pool.New[value.Value](opts.poolInitial, opts.poolMaxBlock)

	rt.prev = value.Configure(value.Settings{
		Kernel:   rt.kernel,
		Memory:   rt.rc,
		Pool:     rt.pool,
		Observer: dispatchObserver{rt},
		Logger:   rt.logger.Logger,
	})
	active = rt

	rt.logger.LogOpen(ctx, rt.rc.Threads(), rt.kernel.MinParallel(), rt.rc.MemoryLimit())
	return rt, nil
}

// Close ends the session and restores the settings that were installed
// before Open. Values allocated during the session stay valid and still
// return to the session pool when released, but no longer count against the
// closed session's budget.
func (rt *Runtime) Close(ctx context.Context) error {
	if rt == nil {
		return nil
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.closed {
		return ErrClosed
	}
	rt.closed = true

	stats := rt.stats()

	activeMu.Lock()
	value.Configure(rt.prev)
	if active == rt {
		active = nil
	}
	activeMu.Unlock()

	rt.logger.LogClose(ctx, stats)
	return nil
}

// Threads returns the size of the session thread pool.
func (rt *Runtime) Threads() int {
	return rt.rc.Threads()
}

// SortThreshold returns the length at or below which sorts run
// sequentially.
func (rt *Runtime) SortThreshold() int {
	return rt.kernel.MinParallel()
}

// Logger returns the session logger.
func (rt *Runtime) Logger() *Logger {
	return rt.logger
}

// Stats returns a snapshot of the session's resource usage.
func (rt *Runtime) Stats() Stats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.stats()
}

func (rt *Runtime) stats() Stats {
	ps := rt.pool.Stats()
	return Stats{
		Threads:         rt.rc.Threads(),
		SortThreshold:   rt.kernel.MinParallel(),
		MemoryUsed:      rt.rc.MemoryUsage(),
		MemoryLimit:     rt.rc.MemoryLimit(),
		ValuesAllocated: ps.Gets,
		LiveValues:      ps.InUse,
		PoolBytes:       ps.MemoryUsage(),
	}
}

// dispatchObserver forwards object-layer dispatch events to the session's
// metrics and logger.
type dispatchObserver struct {
	rt *Runtime
}

func (o dispatchObserver) ObserveDispatch(op string, elements int, bulk bool, d time.Duration, err error) {
	o.rt.metrics.RecordDispatch(op, elements, bulk, d, err)
	o.rt.logger.LogDispatch(context.Background(), op, elements, bulk, d, err)
}

package vecscript

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    sortHistogram   prometheus.Histogram
//	    dispatchCounter *prometheus.CounterVec
//	}
//
//	func (p *PrometheusCollector) RecordSort(n int, parallel bool, duration time.Duration) {
//	    p.sortHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordSort is called after each sort or ordering of n elements.
	// parallel reports whether the work was split across threads.
	RecordSort(n int, parallel bool, duration time.Duration)

	// RecordDispatch is called after each property get, property set or
	// method call over the elements of an object vector. bulk reports
	// whether the class's bulk path served the call, err is nil if
	// successful.
	RecordDispatch(op string, elements int, bulk bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSort(int, bool, time.Duration)                       {}
func (NoopMetricsCollector) RecordDispatch(string, int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SortCount          atomic.Int64
	SortParallel       atomic.Int64
	SortElements       atomic.Int64
	SortTotalNanos     atomic.Int64
	DispatchCount      atomic.Int64
	DispatchBulk       atomic.Int64
	DispatchErrors     atomic.Int64
	DispatchElements   atomic.Int64
	DispatchTotalNanos atomic.Int64
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(n int, parallel bool, duration time.Duration) {
	b.SortCount.Add(1)
	b.SortElements.Add(int64(n))
	b.SortTotalNanos.Add(duration.Nanoseconds())
	if parallel {
		b.SortParallel.Add(1)
	}
}

// RecordDispatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDispatch(_ string, elements int, bulk bool, duration time.Duration, err error) {
	b.DispatchCount.Add(1)
	b.DispatchElements.Add(int64(elements))
	b.DispatchTotalNanos.Add(duration.Nanoseconds())
	if bulk {
		b.DispatchBulk.Add(1)
	}
	if err != nil {
		b.DispatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SortCount:        b.SortCount.Load(),
		SortParallel:     b.SortParallel.Load(),
		SortElements:     b.SortElements.Load(),
		SortAvgNanos:     avg(b.SortTotalNanos.Load(), b.SortCount.Load()),
		DispatchCount:    b.DispatchCount.Load(),
		DispatchBulk:     b.DispatchBulk.Load(),
		DispatchErrors:   b.DispatchErrors.Load(),
		DispatchElements: b.DispatchElements.Load(),
		DispatchAvgNanos: avg(b.DispatchTotalNanos.Load(), b.DispatchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SortCount        int64
	SortParallel     int64
	SortElements     int64
	SortAvgNanos     int64
	DispatchCount    int64
	DispatchBulk     int64
	DispatchErrors   int64
	DispatchElements int64
	DispatchAvgNanos int64
}

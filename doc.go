// Package vecscript is the value substrate of a vectorized scripting
// language: dynamically kinded vectors with optional array dimensions,
// reference-counted object elements dispatched through class signatures, and
// parallel sort kernels sized to a session thread pool.
//
// The data model lives in package value. This package owns the session:
// it sizes the thread pool once, sets the memory budget of element storage,
// and wires logging and metrics into the kernels and the object layer.
//
// # Quick Start
//
//	ctx := context.Background()
//	rt, err := vecscript.Open(ctx,
//	    vecscript.WithThreads(8),
//	    vecscript.WithMemoryLimit(1<<30),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rt.Close(ctx)
//
//	v := value.NewFloat(5, math.NaN(), 1, 3)
//	defer v.Release()
//	_ = v.Sort(true) // 1.0 3.0 5.0 NAN
//
// # Sessions
//
// The value system keeps one set of process-wide settings, so at most one
// Runtime is open at a time. Values created without an open Runtime use
// sequential kernels, an unlimited budget and a default pool.
//
// # Memory
//
// Every growth of element storage is charged to the session budget. Running
// out is not an error the evaluator can recover from: the allocating call
// panics with *value.AllocationError, which the host is expected to treat as
// fatal for the script.
//
// # Observability
//
// Sorts and object dispatches are reported to the MetricsCollector set with
// WithMetricsCollector. Session lifecycle is logged at Info, kernel and
// dispatch path choices at Debug.
package vecscript

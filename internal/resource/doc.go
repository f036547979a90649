// Package resource implements the session-wide resource controller.
//
// A Controller governs two budgets, both fixed when the session starts:
//
//   - Memory: value buffers reserve bytes before they grow (non-blocking,
//     fail-fast). Running out is an allocation failure for the caller.
//   - Workers: the number of goroutines that parallel kernels may run at once.
//     Slots are taken with TryAcquireWorker, so a kernel that cannot get a slot
//     simply does the work on its own goroutine.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	    Threads:          8,
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Nil Safety
//
// All methods handle a nil Controller: memory is unlimited and untracked, and
// there is a single thread with no extra worker slots.
package resource

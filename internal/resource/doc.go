// Package resource governs the memory and IO an analysis may use.
//
//   - Memory: bipartition buffers are reserved before they are allocated.
//     Reservations are non-blocking and fail fast with ErrMemoryLimit.
//   - IO: tree-set reads and report writes pass through a token bucket.
//
// Memory usage is tracked even without a limit:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(n); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(n)
//
//	r := resource.NewRateLimitedReader(ctx, file, rc)
//
// All methods are safe for concurrent use, and a nil *Controller imposes no
// limits.
package resource

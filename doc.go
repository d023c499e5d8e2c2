// Package arena implements a scoped, autoscaling bump allocator for
// array-like data.
//
// # Overview
//
// Code that builds many temporary buffers can route its allocations through
// a pluggable policy instead of the Go heap. The policy is carried in a
// context.Context, so callees pick it up implicitly and an override is
// visible only within its dynamic extent. Arena-backed policies serve
// requests by bumping an offset through pre-reserved memory and reclaim
// everything at once on Reset, which is useful for:
//
//   - Cycle-scoped allocations (per request, per batch, per frame)
//   - Reducing garbage collection pressure under heavy churn
//   - Workloads whose per-cycle footprint is stable enough to converge
//
// # Policies
//
// Three allocation policies are provided:
//
//   - Heap: ordinary Go allocation. Always safe, never tracked.
//   - ArenaAllocator: direct arena bumps with no lock and no tracking.
//     Fastest, but strictly single-goroutine; concurrent use is undefined.
//   - LockingAllocator: mutex-guarded arena access, safe for concurrent
//     callers, and the only policy that can issue checked buffers.
//
// # Basic Usage
//
//	ar := arena.NewAutoArena(0) // default main buffer size
//	alloc := arena.NewLockingAllocator(ar)
//
//	err := arena.With(ctx, alloc, func(ctx context.Context) error {
//		buf := arena.Make[float64](arena.FromContext(ctx), 4, 4)
//		// ... use buf ...
//		return nil
//	})
//
//	alloc.Reset() // reclaim every allocation in one step
//
// # Checked Buffers
//
// A buffer created with MakeChecked shares a Validity tracker with every
// view derived from it. Reset on the issuing LockingAllocator invalidates
// all of them, after which At and Set return ErrInvalidMemoryAccess
// instead of reading recycled memory. The tracker serializes liveness
// checks against invalidation only; races on the data itself remain the
// caller's responsibility.
//
// # Sizing
//
// An AutoArena never refuses an allocation: when no buffer has room it
// grows by an overflow buffer sized to at least twice the unmet request.
// Reset records per-cycle usage and, when buffers proliferate or demand
// drops well below capacity, consolidates down to a single main buffer
// sized from that history. Size-stable workloads converge to a single
// buffer and O(1) in-place resets.
//
// # Important Notes
//
//   - Arena memory is valid only until the owning arena's next Reset
//   - No individual deallocation; reclamation is whole-arena only
//   - Checkpoint/restore of the allocation offset is unsupported
//   - Reset never runs implicitly; reclamation is always caller-triggered
package arena

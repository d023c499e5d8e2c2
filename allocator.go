package arena

import "sync"

// Allocator is an allocation policy. Buffer constructors route their raw
// byte requests through whichever policy they are handed (usually the one
// carried by the surrounding context).
type Allocator interface {
	// Allocate returns an n-byte region obtained per the policy's strategy,
	// or nil if n <= 0. The region's lifetime depends on the policy: heap
	// regions live as long as they are referenced, arena regions only until
	// the owning arena's next Reset.
	Allocate(n int) []byte
}

// CheckedAllocator is an Allocator that can additionally issue tracked
// regions, whose Validity it invalidates on Reset.
type CheckedAllocator interface {
	Allocator

	// AllocateChecked returns a zeroed n-byte region together with the
	// Validity that will be invalidated when the region's memory is
	// reclaimed.
	AllocateChecked(n int) ([]byte, *Validity)
}

// HeapAllocator is the default policy: ordinary Go heap allocation. Regions
// are managed by the garbage collector, never recycled behind the caller's
// back, and therefore never tracked.
//
// HeapAllocator is safe to use from multiple goroutines.
type HeapAllocator struct{}

// Heap is the process default policy, used when no override is in scope.
var Heap Allocator = HeapAllocator{}

// Allocate returns a fresh zeroed n-byte slice from the Go heap.
func (HeapAllocator) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	return make([]byte, n)
}

// ArenaAllocator delegates every request straight to one AutoArena with no
// locking and no tracking. This is the fastest policy, and the contract is
// correspondingly strict: all use must come from a single goroutine (or be
// externally serialized). Concurrent use is undefined behavior and is not
// detected at runtime.
type ArenaAllocator struct {
	arena *AutoArena
}

// NewArenaAllocator creates an unchecked policy over the given arena.
func NewArenaAllocator(a *AutoArena) *ArenaAllocator {
	return &ArenaAllocator{arena: a}
}

// Allocate returns an n-byte region from the underlying arena.
func (a *ArenaAllocator) Allocate(n int) []byte {
	return a.arena.Allocate(n)
}

// Reset reclaims every allocation issued so far. All regions previously
// returned by Allocate become invalid; nothing checks that the caller has
// stopped using them.
func (a *ArenaAllocator) Reset() {
	a.arena.Reset()
}

// Arena returns the underlying arena, for diagnostics.
func (a *ArenaAllocator) Arena() *AutoArena {
	return a.arena
}

// LockingAllocator wraps an AutoArena with a mutex, making concurrent
// allocation from multiple goroutines safe, and keeps a registry of the
// Validity trackers it has issued so Reset can invalidate them all.
//
// The mutex serializes arena operations against each other only. A Reset
// racing with a caller still using untracked memory handed out earlier is a
// caller error; only checked allocations get stale-access detection.
type LockingAllocator struct {
	mu       sync.Mutex
	arena    *AutoArena
	trackers []*Validity
}

// NewLockingAllocator creates a goroutine-safe policy over the given arena.
// The arena must not be used directly while the policy owns it.
func NewLockingAllocator(a *AutoArena) *LockingAllocator {
	return &LockingAllocator{arena: a}
}

// Allocate returns an untracked n-byte region from the underlying arena.
func (l *LockingAllocator) Allocate(n int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.arena.Allocate(n)
}

// AllocateChecked returns a zeroed n-byte region plus its Validity. The
// arena bump, the zeroing, and the registry append happen under one lock
// acquisition, so a concurrent Reset can never observe the region allocated
// but untracked, and never races the zeroing either.
func (l *LockingAllocator) AllocateChecked(n int) ([]byte, *Validity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.arena.Allocate(n)
	clear(b)
	v := newValidity()
	l.trackers = append(l.trackers, v)
	return b, v
}

// Reset invalidates every outstanding tracker, clears the registry, then
// resets the underlying arena. Invalidation strictly precedes the arena
// reset so no live tracker can observe recycled memory.
func (l *LockingAllocator) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, v := range l.trackers {
		v.Invalidate()
	}
	l.trackers = nil
	l.arena.Reset()
}

// Outstanding returns the number of checked allocations issued since the
// last Reset, for diagnostics.
func (l *LockingAllocator) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.trackers)
}

// Metrics returns a snapshot of the underlying arena's statistics.
func (l *LockingAllocator) Metrics() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.arena.Metrics()
}

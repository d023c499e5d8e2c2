package arena

import "sync"

// Validity records whether the memory behind one checked allocation is
// still safe to access. One Validity is shared, by pointer, between the
// issuing allocator and every buffer or view derived from the allocation,
// so invalidating it invalidates all of them at once.
//
// The lock serializes liveness checks against concurrent invalidation and
// nothing else: two goroutines racing on the data itself are still the
// caller's problem.
type Validity struct {
	mu    sync.RWMutex
	valid bool
}

func newValidity() *Validity {
	return &Validity{valid: true}
}

// Valid reports whether the tracked memory is still live.
func (v *Validity) Valid() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.valid
}

// Invalidate marks the tracked memory as dead. The transition is
// irreversible: there is no way to mark a Validity live again.
func (v *Validity) Invalidate() {
	v.mu.Lock()
	v.valid = false
	v.mu.Unlock()
}

// guard runs f under the read lock if the memory is still live, and
// returns ErrInvalidMemoryAccess without running f otherwise.
func (v *Validity) guard(f func()) error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if !v.valid {
		return ErrInvalidMemoryAccess
	}
	f()
	return nil
}

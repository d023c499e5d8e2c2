// Package arena implements a scoped, autoscaling bump allocator for
// array-like data. Typical usage: create one arena per workload cycle,
// allocate many buffers from it through an allocation policy, then Reset()
// at the end of the cycle for O(1) cleanup.
package arena

import (
	"fmt"
	"log/slog"
)

// DefaultBufferSize is the default main-buffer size for new arenas (64 KiB).
const DefaultBufferSize = 1 << 16

// DefaultHistorySize is the default number of per-cycle usage samples kept
// for the consolidation heuristic.
const DefaultHistorySize = 10

// AutoArena is an autoscaling bump allocator. It owns a main buffer plus a
// most-recently-added-first list of overflow buffers, and grows on demand,
// so an allocation request never fails for lack of arena space.
//
// AutoArena is not goroutine-safe. Use a LockingAllocator for concurrent
// access.
type AutoArena struct {
	main        *buffer
	extras      []*buffer // most recently added first
	initialSize int

	// growthEstimate sizes the next overflow buffer; it grows with demand
	// and is halved back on consolidation.
	growthEstimate int

	// history holds total bytes used at each of the last few resets,
	// oldest first. It drives consolidation sizing.
	history     []int
	historySize int

	// maxBuffers is the buffer count above which Reset consolidates.
	maxBuffers int

	log *slog.Logger
}

// Option configures an AutoArena.
type Option func(*AutoArena)

// WithMaxBuffers sets the number of live buffers Reset tolerates before
// consolidating down to a single right-sized main buffer. Values below 1
// are ignored.
func WithMaxBuffers(n int) Option {
	return func(a *AutoArena) {
		if n >= 1 {
			a.maxBuffers = n
		}
	}
}

// WithHistorySize sets how many per-cycle usage samples are retained for
// consolidation sizing. Values below 1 are ignored.
func WithHistorySize(n int) Option {
	return func(a *AutoArena) {
		if n >= 1 {
			a.historySize = n
		}
	}
}

// WithGrowthEstimate overrides the starting size for the first overflow
// buffer. Values below 1 are ignored.
func WithGrowthEstimate(n int) Option {
	return func(a *AutoArena) {
		if n >= 1 {
			a.growthEstimate = n
		}
	}
}

// WithLogger attaches a logger for growth and consolidation events,
// emitted at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(a *AutoArena) {
		a.log = l
	}
}

// NewAutoArena creates an arena whose main buffer holds initialSize bytes.
// If initialSize <= 0, DefaultBufferSize is used.
func NewAutoArena(initialSize int, opts ...Option) *AutoArena {
	if initialSize <= 0 {
		initialSize = DefaultBufferSize
	}
	a := &AutoArena{
		initialSize:    initialSize,
		growthEstimate: initialSize,
		historySize:    DefaultHistorySize,
		maxBuffers:     1,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.main = newBuffer(initialSize)
	return a
}

// Allocate returns an n-byte region from the arena, growing it if no
// existing buffer has room. Returns nil if n <= 0. The region contents are
// undefined: buffers are recycled across Reset without zeroing.
//
// The returned slice is valid until the next Reset or Release.
func (a *AutoArena) Allocate(n int) []byte {
	a.panicIfReleased()
	if n <= 0 {
		return nil
	}

	// Fast path: main buffer.
	if a.main.fits(n) {
		return a.main.allocate(n)
	}

	// Medium path: most recent overflow buffer first, so follow-up requests
	// of similar size land in the freshly grown buffer.
	for _, b := range a.extras {
		if b.fits(n) {
			return b.allocate(n)
		}
	}

	return a.allocateSlow(n)
}

// allocateSlow grows the arena by one overflow buffer and allocates from it.
func (a *AutoArena) allocateSlow(n int) []byte {
	size := a.growthEstimate
	if 2*n > size {
		size = 2 * n
	}
	a.growthEstimate = size

	b := newBuffer(size)
	a.extras = append([]*buffer{b}, a.extras...)
	if a.log != nil {
		a.log.Debug("arena: grow", "request", n, "buffer_size", size, "buffers", a.NumBuffers())
	}
	return b.allocate(n)
}

// Reserve ensures some buffer has at least n free bytes, growing the arena
// if necessary without allocating.
func (a *AutoArena) Reserve(n int) {
	a.panicIfReleased()
	if n <= 0 {
		return
	}
	if a.main.fits(n) {
		return
	}
	for _, b := range a.extras {
		if b.fits(n) {
			return
		}
	}
	size := a.growthEstimate
	if 2*n > size {
		size = 2 * n
	}
	a.growthEstimate = size
	a.extras = append([]*buffer{newBuffer(size)}, a.extras...)
}

// Reset reclaims every allocation in one step.
//
// The bytes used this cycle are recorded into a bounded history. When the
// buffer count is within the configured maximum and total capacity is not
// far above recent demand, every buffer's offset is reset in place, which
// is the steady-state fast path. Otherwise the arena consolidates: all
// buffers are replaced with a single main buffer sized
// max(ceil(1.1 x bytes used), max of recent history), and the growth
// estimate is set to half that size.
//
// Memory handed out before Reset must no longer be used; checked buffers
// enforce this, unchecked ones do not.
func (a *AutoArena) Reset() {
	a.panicIfReleased()

	used := a.Used()
	a.history = append(a.history, used)
	if len(a.history) > a.historySize {
		a.history = a.history[len(a.history)-a.historySize:]
	}

	peak := a.history[0]
	for _, u := range a.history[1:] {
		if u > peak {
			peak = u
		}
	}

	// Consolidate when fragmented across too many buffers, or when sustained
	// demand has dropped far enough below capacity that holding the old
	// footprint is waste.
	size := a.consolidatedSize(used, peak)
	if a.NumBuffers() > a.maxBuffers || (a.Capacity() > 2*peak && size < a.Capacity()) {
		a.consolidate(used, peak, size)
		return
	}

	a.main.reset()
	for _, b := range a.extras {
		b.reset()
	}
}

// consolidatedSize is the main-buffer size a consolidation would produce:
// max(ceil(1.1 x bytes used), max of recent history), floored at the
// configured initial size.
func (a *AutoArena) consolidatedSize(used, peak int) int {
	size := ceilGrow(used)
	if peak > size {
		size = peak
	}
	if size < a.initialSize {
		size = a.initialSize
	}
	return size
}

func (a *AutoArena) consolidate(used, peak, size int) {
	a.main = newBuffer(size)
	a.extras = nil
	a.growthEstimate = size / 2
	if a.growthEstimate < 1 {
		a.growthEstimate = 1
	}
	if a.log != nil {
		a.log.Debug("arena: consolidate", "used", used, "peak", peak, "main_size", size)
	}
}

// ceilGrow returns ceil(1.1 * n).
func ceilGrow(n int) int {
	return (n*11 + 9) / 10
}

// Checkpoint always fails: saving and restoring a mid-cycle allocation
// offset has no consistent meaning once allocations span multiple buffers.
func (a *AutoArena) Checkpoint() (int, error) {
	return 0, fmt.Errorf("checkpoint autoscaling arena: %w", ErrUnsupportedOperation)
}

// Release drops all buffers and makes the arena unusable.
// Any subsequent operations will panic.
func (a *AutoArena) Release() {
	a.main = nil
	a.extras = nil
}

func (a *AutoArena) panicIfReleased() {
	if a.main == nil {
		panic("arena: use after Release()")
	}
}

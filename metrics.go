package arena

// Used returns the total number of bytes currently allocated across all
// buffers. This includes internal fragmentation due to alignment.
func (a *AutoArena) Used() int {
	if a.main == nil {
		return 0
	}
	sum := a.main.used()
	for _, b := range a.extras {
		sum += b.used()
	}
	return sum
}

// Capacity returns the total capacity (in bytes) of all buffers.
func (a *AutoArena) Capacity() int {
	if a.main == nil {
		return 0
	}
	sum := a.main.capacity()
	for _, b := range a.extras {
		sum += b.capacity()
	}
	return sum
}

// NumBuffers returns the number of buffers currently owned by the arena.
func (a *AutoArena) NumBuffers() int {
	if a.main == nil {
		return 0
	}
	return 1 + len(a.extras)
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *AutoArena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.Used()) / float64(capacity)
}

// MaxBuffers returns the buffer count above which Reset consolidates.
func (a *AutoArena) MaxBuffers() int {
	return a.maxBuffers
}

// SetMaxBuffers alters the consolidation threshold. Values below 1 are
// ignored. Takes effect at the next Reset.
func (a *AutoArena) SetMaxBuffers(n int) {
	if n >= 1 {
		a.maxBuffers = n
	}
}

// HistorySize returns the number of per-cycle usage samples retained.
func (a *AutoArena) HistorySize() int {
	return a.historySize
}

// SetHistorySize alters the history bound, dropping the oldest samples if
// the new bound is smaller. Values below 1 are ignored.
func (a *AutoArena) SetHistorySize(n int) {
	if n < 1 {
		return
	}
	a.historySize = n
	if len(a.history) > n {
		a.history = a.history[len(a.history)-n:]
	}
}

// GrowthEstimate returns the size the next overflow buffer would get.
func (a *AutoArena) GrowthEstimate() int {
	return a.growthEstimate
}

// Metrics returns a snapshot of arena statistics.
func (a *AutoArena) Metrics() Metrics {
	return Metrics{
		Used:           a.Used(),
		Capacity:       a.Capacity(),
		NumBuffers:     a.NumBuffers(),
		GrowthEstimate: a.growthEstimate,
		Utilization:    a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	Used           int     // Bytes currently allocated
	Capacity       int     // Total capacity in bytes
	NumBuffers     int     // Number of buffers
	GrowthEstimate int     // Size of the next overflow buffer
	Utilization    float64 // Ratio of used to total capacity (0.0-1.0)
}

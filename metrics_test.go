package arena

import (
	"testing"
)

func TestAutoArenaMetrics(t *testing.T) {
	a := NewAutoArena(1024)

	// Initial state
	if a.Used() != 0 {
		t.Errorf("Initial Used = %d, want 0", a.Used())
	}
	if a.NumBuffers() != 1 {
		t.Errorf("Initial NumBuffers = %d, want 1", a.NumBuffers())
	}
	if a.Capacity() != 1024 {
		t.Errorf("Initial Capacity = %d, want 1024", a.Capacity())
	}
	if a.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", a.Utilization())
	}

	a.Allocate(100)
	a.Allocate(200)

	if a.Used() == 0 {
		t.Error("Used should be > 0 after allocations")
	}
	utilization := a.Utilization()
	if utilization <= 0 || utilization > 1 {
		t.Errorf("Utilization = %f, want 0 < x <= 1", utilization)
	}

	// Force growth
	a.Allocate(2000)
	if a.NumBuffers() != 2 {
		t.Errorf("NumBuffers after growth = %d, want 2", a.NumBuffers())
	}
	if a.Capacity() <= 1024 {
		t.Errorf("Capacity after growth = %d, want > 1024", a.Capacity())
	}

	snapshot := a.Metrics()
	if snapshot.Used != a.Used() {
		t.Error("Metrics.Used mismatch")
	}
	if snapshot.Capacity != a.Capacity() {
		t.Error("Metrics.Capacity mismatch")
	}
	if snapshot.NumBuffers != a.NumBuffers() {
		t.Error("Metrics.NumBuffers mismatch")
	}
	if snapshot.GrowthEstimate != a.GrowthEstimate() {
		t.Error("Metrics.GrowthEstimate mismatch")
	}
}

func TestMetricsAfterRelease(t *testing.T) {
	a := NewAutoArena(1024)
	a.Allocate(100)
	a.Release()

	// Metrics queries stay safe on a released arena.
	if a.Used() != 0 {
		t.Errorf("Used after Release = %d, want 0", a.Used())
	}
	if a.Capacity() != 0 {
		t.Errorf("Capacity after Release = %d, want 0", a.Capacity())
	}
	if a.NumBuffers() != 0 {
		t.Errorf("NumBuffers after Release = %d, want 0", a.NumBuffers())
	}
	if a.Utilization() != 0 {
		t.Errorf("Utilization after Release = %f, want 0", a.Utilization())
	}
}

func TestLockingAllocatorMetrics(t *testing.T) {
	l := NewLockingAllocator(NewAutoArena(1024))

	l.Allocate(100)
	l.AllocateChecked(50)

	m := l.Metrics()
	if m.Used == 0 {
		t.Error("Metrics.Used should be > 0 after allocations")
	}
	if m.NumBuffers != 1 {
		t.Errorf("Metrics.NumBuffers = %d, want 1", m.NumBuffers)
	}

	l.Reset()
	if l.Metrics().Used != 0 {
		t.Errorf("Metrics.Used after Reset = %d, want 0", l.Metrics().Used)
	}
}

package arena

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage tests scenarios where arena policies should excel
func BenchmarkRealisticUsage(b *testing.B) {

	// Test 1: Many small buffers with per-cycle cleanup
	b.Run("ManySmallBuffers/Arena", func(b *testing.B) {
		alloc := NewArenaAllocator(NewAutoArena(64 * 1024))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				Make[byte](alloc, 64)
			}
			// Reset every cycle (simulates request cleanup)
			alloc.Reset()
		}
	})

	b.Run("ManySmallBuffers/Heap", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				Make[byte](Heap, 64)
			}
			// Force GC to clean up (simulates request cleanup)
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 2: Matrix-shaped workloads
	b.Run("Matrices/Arena", func(b *testing.B) {
		alloc := NewArenaAllocator(NewAutoArena(1024 * 1024))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 20; j++ {
				m := Make[float64](alloc, 32, 32)
				m.Raw()[0] = float64(j)
			}
			alloc.Reset()
		}
	})

	b.Run("Matrices/Heap", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 20; j++ {
				m := Make[float64](Heap, 32, 32)
				m.Raw()[0] = float64(j)
			}
		}
	})

	// Test 3: Checked vs unchecked access cost
	b.Run("Access/Checked", func(b *testing.B) {
		l := NewLockingAllocator(NewAutoArena(1024))
		buf := MakeChecked[float64](l, 64)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := buf.At(i % 64); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Access/Unchecked", func(b *testing.B) {
		alloc := NewArenaAllocator(NewAutoArena(1024))
		buf := Make[float64](alloc, 64)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := buf.At(i % 64); err != nil {
				b.Fatal(err)
			}
		}
	})

	// Test 4: Steady-state convergence (consolidation then in-place resets)
	b.Run("SteadyStateReset", func(b *testing.B) {
		alloc := NewArenaAllocator(NewAutoArena(1024))
		for j := 0; j < 50; j++ {
			Make[byte](alloc, 512)
		}
		alloc.Reset() // consolidate once
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 50; j++ {
				Make[byte](alloc, 512)
			}
			alloc.Reset()
		}
	})
}

package arena_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/scopealloc/arena"
)

// BenchmarkAllocationPatterns tests allocation behaviors across size regimes
func BenchmarkAllocationPatterns(b *testing.B) {

	// Fixed sizes across the fast/medium/slow paths
	for _, size := range []int{8, 64, 1024, 16 * 1024} {
		b.Run(fmt.Sprintf("Fixed_%d", size), func(b *testing.B) {
			a := arena.NewAutoArena(1024 * 1024)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				a.Allocate(size)
				if i%1000 == 999 {
					a.Reset()
				}
			}
		})
	}

	// Mixed sizes: this is where the growth estimate earns its keep
	b.Run("Mixed", func(b *testing.B) {
		a := arena.NewAutoArena(64 * 1024)
		rng := rand.New(rand.NewSource(1))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			a.Allocate(1 + rng.Intn(4096))
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})

	// Worst case: every allocation overflows the current buffers
	b.Run("AlwaysOverflow", func(b *testing.B) {
		a := arena.NewAutoArena(64)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			a.Allocate(128 * 1024)
			a.Reset()
		}
	})

	// Typed buffer construction vs raw bytes
	b.Run("Buf_float64_1024", func(b *testing.B) {
		alloc := arena.NewArenaAllocator(arena.NewAutoArena(1024 * 1024))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			arena.Make[float64](alloc, 1024)
			if i%100 == 99 {
				alloc.Reset()
			}
		}
	})

	b.Run("RawBytes_8192", func(b *testing.B) {
		a := arena.NewAutoArena(1024 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			a.Allocate(8192)
			if i%100 == 99 {
				a.Reset()
			}
		}
	})

	// Consolidation cost when buffer counts are allowed to climb
	for _, maxBuffers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("Reset_MaxBuffers_%d", maxBuffers), func(b *testing.B) {
			a := arena.NewAutoArena(4096, arena.WithMaxBuffers(maxBuffers))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				for j := 0; j < 8; j++ {
					a.Allocate(3000)
				}
				a.Reset()
			}
		})
	}
}

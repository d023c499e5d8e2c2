// Command arenasim runs a concurrent allocation workload against a locking
// arena policy and reports how the consolidation heuristic converges.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/scopealloc/arena"
)

var (
	Workers  = pflag.IntP("workers", "w", 4, "concurrent allocating goroutines")
	Cycles   = pflag.IntP("cycles", "c", 20, "allocate/reset cycles to run")
	Allocs   = pflag.IntP("allocs", "n", 256, "buffers allocated per worker per cycle")
	MaxElems = pflag.IntP("max-elems", "e", 1024, "max float64 elements per buffer")
	InitSize = pflag.Int("initial-size", arena.DefaultBufferSize, "initial arena buffer size in bytes")
	History  = pflag.Int("history", arena.DefaultHistorySize, "usage history samples kept for consolidation")
	Seed     = pflag.Int64("seed", 1, "workload rng seed")
	Verbose  = pflag.BoolP("verbose", "v", false, "debug logging of arena growth events")
	Help     = pflag.BoolP("help", "h", false, "show this help text")
)

func main() {
	pflag.Parse()

	if *Help || pflag.NArg() != 0 {
		fmt.Printf("usage: %s [options]\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if *Help {
			return
		}
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	})))

	if err := run(); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ar := arena.NewAutoArena(*InitSize,
		arena.WithHistorySize(*History),
		arena.WithLogger(slog.Default()),
	)
	alloc := arena.NewLockingAllocator(ar)
	ctx := arena.NewContext(context.Background(), alloc)

	for cycle := 0; cycle < *Cycles; cycle++ {
		g, ctx := errgroup.WithContext(ctx)
		for w := 0; w < *Workers; w++ {
			rng := rand.New(rand.NewSource(*Seed + int64(cycle)*1000 + int64(w)))
			g.Go(func() error {
				return work(ctx, rng)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		m := alloc.Metrics()
		slog.Info("cycle complete",
			"cycle", cycle,
			"used", m.Used,
			"capacity", m.Capacity,
			"buffers", m.NumBuffers,
			"utilization", fmt.Sprintf("%.2f", m.Utilization),
			"checked", alloc.Outstanding(),
		)

		// Caller-triggered reclamation; every checked buffer from this
		// cycle becomes stale here.
		alloc.Reset()
	}
	return nil
}

// work allocates a mix of checked and unchecked buffers through the
// context's policy, touching each one to keep the workload honest.
func work(ctx context.Context, rng *rand.Rand) error {
	alloc := arena.FromContext(ctx)
	checked, _ := alloc.(arena.CheckedAllocator)

	for i := 0; i < *Allocs; i++ {
		n := 1 + rng.Intn(*MaxElems)
		if checked != nil && i%4 == 0 {
			buf := arena.MakeChecked[float64](checked, n)
			if err := buf.Set(float64(i), rng.Intn(n)); err != nil {
				return fmt.Errorf("checked write: %w", err)
			}
			view, err := buf.Reshape(n)
			if err != nil {
				return fmt.Errorf("reshape: %w", err)
			}
			if _, err := view.At(0); err != nil {
				return fmt.Errorf("checked read: %w", err)
			}
		} else {
			buf := arena.Make[float64](alloc, n)
			buf.Raw()[0] = float64(i)
		}
	}
	return nil
}

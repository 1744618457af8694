package sweep

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
)

func testConfig() Config {
	return Config{
		Threads:        4,
		PoolSize:       100,
		Redundancy:     10,
		Grid:           []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		Depth:          2,
		Cycles:         4,
		PCREff:         1.9,
		SpuriousEff:    1.1,
		ThresholdRatio: 0.1,
		Seed:           7,
	}
}

func collect(t *testing.T, cfg Config) []Point {
	t.Helper()
	var (
		mu  sync.Mutex
		got []Point
	)
	err := ForEachOutcome(context.Background(), cfg, func(p Point) error {
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(got, func(i, j int) bool {
		if got[i].TargetPercent != got[j].TargetPercent {
			return got[i].TargetPercent < got[j].TargetPercent
		}
		return got[i].Outcome.Stage < got[j].Outcome.Stage
	})
	return got
}

func TestSweepCoversGrid(t *testing.T) {
	cfg := testConfig()
	got := collect(t, cfg)
	if want := len(cfg.Grid) * cfg.Depth; len(got) != want {
		t.Fatalf("got %d points, want %d", len(got), want)
	}
	for _, p := range got {
		if p.Err != nil {
			t.Fatalf("point %v failed: %v", p.TargetPercent, p.Err)
		}
		if n := len(p.Outcome.Desired) + len(p.Outcome.Spurious); n != cfg.PoolSize {
			t.Errorf("percent %v stage %d: population %d, want %d", p.TargetPercent, p.Outcome.Stage, n, cfg.PoolSize)
		}
	}
}

// Identical seeds reproduce identical outcomes regardless of thread count:
// each grid point owns a stream derived from (seed, index), not from
// scheduling order.
func TestSweepReproducibleAcrossThreadCounts(t *testing.T) {
	one := testConfig()
	one.Threads = 1
	many := testConfig()
	many.Threads = 8

	a, b := collect(t, one), collect(t, many)
	if len(a) != len(b) {
		t.Fatalf("point counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		x, y := a[i].Outcome, b[i].Outcome
		if a[i].TargetPercent != b[i].TargetPercent || x.Stage != y.Stage {
			t.Fatalf("point %d identity differs", i)
		}
		if x.FalseNegatives != y.FalseNegatives || x.FalsePositives != y.FalsePositives || x.Mean != y.Mean {
			t.Errorf("point %d outcomes differ across thread counts: %+v vs %+v", i, x, y)
		}
	}
}

// A degenerate grid point fails alone; the rest of the sweep still reports.
func TestSweepIsolatesFailedPoints(t *testing.T) {
	cfg := testConfig()
	cfg.Grid = []float64{0.005, 0.5} // 0.005 leaves an empty target prefix
	got := collect(t, cfg)

	var failed, succeeded int
	for _, p := range got {
		if p.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 1 {
		t.Errorf("failed points = %d, want 1", failed)
	}
	if succeeded != cfg.Depth {
		t.Errorf("succeeded points = %d, want %d", succeeded, cfg.Depth)
	}
}

func TestSweepHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachOutcome(ctx, testConfig(), func(Point) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSweepPropagatesVisitError(t *testing.T) {
	sentinel := errors.New("stop")
	err := ForEachOutcome(context.Background(), testConfig(), func(Point) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want sentinel", err)
	}
}

// After a visit error the collector stops reporting: no visit call follows
// the failing one, even when more results are already queued.
func TestSweepStopsVisitingAfterError(t *testing.T) {
	sentinel := errors.New("stop")
	calls := 0
	err := ForEachOutcome(context.Background(), testConfig(), func(Point) error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if calls != 1 {
		t.Errorf("visit called %d times after an error, want exactly 1", calls)
	}
}

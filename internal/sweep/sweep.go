// internal/sweep/sweep.go
package sweep

import (
	"context"
	"sync"

	"golang.org/x/exp/rand"

	"rapsim/internal/amplify"
	"rapsim/internal/pool"
	"rapsim/internal/simulate"
)

// Config controls one sweep over target percents.
type Config struct {
	Threads int // worker goroutines (>=1)

	PoolSize   int
	Redundancy float64

	Grid   []float64 // target percents, one job each
	Depth  int       // nesting depth: stages per job
	Cycles int       // cycles per stage

	PCREff         float64
	SpuriousEff    float64
	ThresholdRatio float64

	Deterministic bool
	Seed          uint64
}

// Point is one (target percent, stage) result. Err is set when the grid
// point's run failed; failed points are reported, never averaged away.
type Point struct {
	TargetPercent float64
	Outcome       simulate.StageOutcome
	Err           error
}

// streamSeed spreads the base seed across jobs. Weyl increment keeps the
// per-job seeds distinct even for consecutive indices.
func streamSeed(base uint64, job int) uint64 {
	return base + 0x9e3779b97f4a7c15*uint64(job+1)
}

// ForEachOutcome runs every grid point and calls visit once per stage
// outcome. Visit calls arrive in completion order; callers wanting a stable
// order sort afterwards. The first error from visit cancels the remaining
// grid points, and no further visit calls are made; in-flight points finish
// before ForEachOutcome returns that error. Cancelling ctx returns ctx.Err().
func ForEachOutcome(parent context.Context, cfg Config, visit func(Point) error) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	depth := cfg.Depth
	if depth < 1 {
		depth = 1
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan int, cfg.Threads*2)
	results := make(chan []Point, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					select {
					case results <- runPoint(cfg, depth, j):
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for ps := range results {
			if cerr != nil {
				continue
			}
			for _, p := range ps {
				if err := visit(p); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

feed:
	for j := range cfg.Grid {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- j:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return parent.Err()
}

// runPoint evaluates one target percent across all requested stages.
func runPoint(cfg Config, depth, job int) []Point {
	percent := cfg.Grid[job]

	var eng amplify.Engine = amplify.Deterministic{}
	if !cfg.Deterministic {
		eng = amplify.Stochastic{Src: rand.NewSource(streamSeed(cfg.Seed, job))}
	}

	sim := simulate.New(simulate.Config{
		Engine:         eng,
		PCREff:         amplify.Uniform(cfg.PCREff),
		SpuriousEff:    amplify.Uniform(cfg.SpuriousEff),
		ThresholdRatio: cfg.ThresholdRatio,
	})

	stages := make([]simulate.Stage, depth)
	for i := range stages {
		stages[i] = simulate.Stage{TargetPercent: percent, Cycles: cfg.Cycles}
	}

	outs, err := sim.RunAll(pool.New(cfg.PoolSize, cfg.Redundancy), stages)
	if err != nil {
		return []Point{{TargetPercent: percent, Err: err}}
	}
	ps := make([]Point, len(outs))
	for i, out := range outs {
		ps[i] = Point{TargetPercent: percent, Outcome: out}
	}
	return ps
}
